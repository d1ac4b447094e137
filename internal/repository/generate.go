package repository

import (
	"fmt"
	"os"

	"gorm.io/gen"

	"AllWell/internal/model"
	"AllWell/pkg/errors"
	"AllWell/storage/database"
)

// ========== StaffUser 相关查询接口 ==========

// StaffUserQuerier 员工查询接口
type StaffUserQuerier interface {
	// GetByBadgeCode 根据工牌号查询员工
	//
	// SELECT * FROM @@table WHERE badge_code = @badgeCode LIMIT 1
	GetByBadgeCode(badgeCode string) (*gen.T, error)

	// GetByPublicID 根据 PublicID 查询员工（API 中 userID 是 public_id）
	//
	// SELECT * FROM @@table WHERE public_id = @publicID LIMIT 1
	GetByPublicID(publicID int64) (*gen.T, error)

	// ListActive 查询在职员工
	//
	// SELECT * FROM @@table
	// WHERE active = true
	// ORDER BY badge_code ASC
	ListActive() ([]*gen.T, error)
}

// ========== Animal 相关查询接口 ==========

// AnimalQuerier 动物名册查询接口
type AnimalQuerier interface {
	// GetByPublicID 根据 PublicID 查询动物
	//
	// SELECT * FROM @@table WHERE public_id = @publicID LIMIT 1
	GetByPublicID(publicID int64) (*gen.T, error)

	// ListBySection 查询某分区的在册动物（巡查名册）
	//
	// SELECT * FROM @@table
	// WHERE section = @section
	//   AND archived = false
	// ORDER BY name ASC
	ListBySection(section string) ([]*gen.T, error)

	// CountBySection 统计各分区的在册动物数量
	//
	// SELECT section, COUNT(*) as count
	// FROM @@table
	// WHERE archived = false
	// GROUP BY section
	CountBySection() ([]gen.M, error)
}

// ========== RoundRecord 相关查询接口 ==========

// RoundRecordQuerier 巡查记录查询接口
type RoundRecordQuerier interface {
	// GetByScope 查询某天某班次某分区的签字记录（幂等检查）
	//
	// SELECT * FROM @@table
	// WHERE round_date = @roundDate::date
	//   AND shift = @shift
	//   AND section = @section
	// LIMIT 1
	GetByScope(roundDate, shift, section string) (*gen.T, error)

	// ListByDate 查询某天的全部签字记录
	//
	// SELECT * FROM @@table
	// WHERE round_date = @roundDate::date
	// ORDER BY shift DESC, section ASC
	ListByDate(roundDate string) ([]*gen.T, error)

	// ListBySigner 按签字员工查询历史记录（分页）
	//
	// SELECT * FROM @@table
	// WHERE signed_by_user_id = @signedByUserID
	// ORDER BY round_date DESC, shift DESC
	// LIMIT @limit OFFSET @offset
	ListBySigner(signedByUserID int64, limit, offset int) ([]*gen.T, error)

	// CountIssuesBySection 统计各分区的累计异常数（用于巡查质量回顾）
	//
	// SELECT section, SUM(issues_found) as issues
	// FROM @@table
	// WHERE round_date >= @fromDate::date
	//   AND round_date <= @toDate::date
	// GROUP BY section
	CountIssuesBySection(fromDate, toDate string) ([]gen.M, error)
}

// ========== Incident 相关查询接口 ==========

// IncidentQuerier 事故记录查询接口
type IncidentQuerier interface {
	// GetByPublicID 根据 PublicID 查询事故记录
	//
	// SELECT * FROM @@table WHERE public_id = @publicID LIMIT 1
	GetByPublicID(publicID int64) (*gen.T, error)

	// ListByDate 查询某天的事故记录
	//
	// SELECT * FROM @@table
	// WHERE incident_date = @incidentDate::date
	// ORDER BY incident_time DESC
	ListByDate(incidentDate string) ([]*gen.T, error)

	// ListOpen 查询未关闭的事故（值班面板用）
	//
	// SELECT * FROM @@table
	// WHERE status != 'resolved'
	// ORDER BY incident_time DESC
	// LIMIT @limit
	ListOpen(limit int) ([]*gen.T, error)

	// CountByTypeAndStatus 按类型和状态统计事故数量
	//
	// SELECT type, status, COUNT(*) as count
	// FROM @@table
	// GROUP BY type, status
	CountByTypeAndStatus() ([]gen.M, error)
}

// ========== NotificationTask 相关查询接口 ==========

// NotificationTaskQuerier 通知任务查询接口
type NotificationTaskQuerier interface {
	// GetByTaskCode 根据 TaskCode 查询通知任务（幂等性检查）
	//
	// SELECT * FROM @@table WHERE task_code = @taskCode LIMIT 1
	GetByTaskCode(taskCode int64) (*gen.T, error)

	// ListByIncidentID 查询某事故的全部通知记录
	//
	// SELECT * FROM @@table
	// WHERE incident_id = @incidentID
	// ORDER BY created_at DESC
	ListByIncidentID(incidentID int64) ([]*gen.T, error)

	// ListFailedTasksForRetry 查询失败需要重试的任务
	//
	// SELECT * FROM @@table
	// WHERE status = 'failed'
	//   AND retry_count < 3
	// ORDER BY created_at ASC
	// LIMIT @limit
	ListFailedTasksForRetry(limit int) ([]*gen.T, error)
}

func Generate() error {
	if err := database.Init(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// 运行数据库迁移（确保表存在）
	if err := database.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migration: %w", err)
	}

	db := database.DB()
	if db == nil {
		return errors.ErrDatabaseConnectionNil
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./internal/repository/query", // 生成代码的输出路径
		ModelPkgPath:      "AllWell/internal/model",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface | gen.WithoutContext,
		FieldNullable:     true, // 字段可以为 null
		FieldCoverable:    false,
		FieldSignable:     false,
		FieldWithIndexTag: false,
		FieldWithTypeTag:  true,
	})

	g.UseDB(db)

	// 注册现有的 model，GORM Gen 会使用这些 model 而不是生成新的
	g.ApplyBasic(
		&model.StaffUser{},
		&model.Animal{},
		&model.RoundRecord{},
		&model.Incident{},
		&model.NotificationTask{},
	)

	// 直接应用接口，GORM Gen 会根据接口中的类型自动匹配已注册的 model
	g.ApplyInterface(func(StaffUserQuerier) {}, &model.StaffUser{})
	g.ApplyInterface(func(AnimalQuerier) {}, &model.Animal{})
	g.ApplyInterface(func(RoundRecordQuerier) {}, &model.RoundRecord{})
	g.ApplyInterface(func(IncidentQuerier) {}, &model.Incident{})
	g.ApplyInterface(func(NotificationTaskQuerier) {}, &model.NotificationTask{})

	g.Execute()

	return nil
}

func RunGenerate() {
	if err := Generate(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate code: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Code generation completed successfully!")
}
