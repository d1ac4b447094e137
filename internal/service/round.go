package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"AllWell/internal/cache"
	"AllWell/internal/model"
	"AllWell/internal/model/dto"
	"AllWell/internal/queue"
	"AllWell/internal/rounds"
	"AllWell/pkg/errors"
	"AllWell/pkg/logger"
	"AllWell/pkg/metrics"
	"AllWell/pkg/snowflake"
	"AllWell/storage/database"
	"AllWell/utils"
)

var (
	roundService *RoundService
	roundOnce    sync.Once
)

func Round() *RoundService {
	roundOnce.Do(func() {
		roundService = &RoundService{}
	})
	return roundService
}

type RoundService struct{}

// scope 一次巡查的定位键
type scope struct {
	date    time.Time
	shift   rounds.Shift
	section rounds.Section
}

func (sc scope) dateStr() string {
	return sc.date.Format(utils.DateLayout)
}

// resolveScope 解析请求里的 scope 参数，date 为空取今天。
// shift 只有当天才按当前时间推断，历史日期必须显式给出
func (s *RoundService) resolveScope(dateStr, shiftStr, sectionStr string, now time.Time) (scope, error) {
	date, err := utils.ParseDate(dateStr, now)
	if err != nil {
		return scope{}, errors.InvalidDate
	}

	var shift rounds.Shift
	if shiftStr == "" {
		if date.Format(utils.DateLayout) != now.Format(utils.DateLayout) {
			return scope{}, errors.InvalidShift
		}
		shift = rounds.DefaultShiftFor(now)
	} else {
		shift, err = rounds.ParseShift(shiftStr)
		if err != nil {
			return scope{}, err
		}
	}

	section, err := rounds.ParseSection(sectionStr)
	if err != nil {
		return scope{}, err
	}

	return scope{date: date, shift: shift, section: section}, nil
}

// findRoundRecord 查询 scope 对应的已签字记录，未找到返回 (nil, nil)
func (s *RoundService) findRoundRecord(ctx context.Context, sc scope) (*model.RoundRecord, error) {
	var rec model.RoundRecord
	err := database.DB().WithContext(ctx).
		Where("round_date = ? AND shift = ? AND section = ?", sc.date, string(sc.shift), string(sc.section)).
		First(&rec).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query round record: %w", err)
	}
	return &rec, nil
}

// OpenSession 打开 (date, shift, section) 的巡查会话
//
// 已有签字记录时回放快照并锁定只读；否则恢复 Redis 里的未签字
// 会话，或者为名单初始化空白会话。
func (s *RoundService) OpenSession(ctx context.Context, req dto.OpenSessionRequest, staffUserID string, now time.Time) (*dto.SessionResponse, error) {
	sc, err := s.resolveScope(req.Date, req.Shift, req.Section, now)
	if err != nil {
		return nil, err
	}

	rec, err := s.findRoundRecord(ctx, sc)
	if err != nil {
		return nil, err
	}

	if rec != nil {
		checks, err := rounds.ParseDetails([]byte(rec.Details))
		if err != nil {
			// 快照损坏按 "没有已存在的记录" 处理，保可用性
			logger.Logger.Error("Malformed round details, treating scope as editable",
				zap.Int64("round_id", rec.PublicID),
				zap.String("section", string(sc.section)),
				zap.Error(err),
			)
		} else {
			// 回放用全量名册，签字后归档的动物也要保留名字
			replayRoster, err := Animal().SectionRosterAll(ctx, sc.section)
			if err != nil {
				return nil, err
			}
			session := rounds.RehydrateSession(sc.dateStr(), sc.shift, sc.section,
				rosterToRefs(replayRoster), checks, rec.GeneralNotes, rec.SignedBy)
			metrics.RecordSessionOpened(string(sc.section), string(rounds.ModeReadOnly))
			return sessionView(session), nil
		}
	}

	roster, err := Animal().SectionRoster(ctx, sc.section)
	if err != nil {
		return nil, err
	}
	refs := rosterToRefs(roster)

	// 未签字的过渡状态放 Redis，换设备可以接着巡
	session, err := cache.GetRoundSession(ctx, sc.dateStr(), sc.shift, sc.section)
	if err != nil {
		logger.Logger.Warn("Failed to load round session from cache",
			zap.String("section", string(sc.section)),
			zap.Error(err),
		)
	}

	if session == nil {
		initials, err := s.staffInitials(ctx, staffUserID)
		if err != nil {
			return nil, err
		}

		session = rounds.NewSession(sc.dateStr(), sc.shift, sc.section, refs, initials)
		if err := cache.SaveRoundSession(ctx, session); err != nil {
			logger.Logger.Warn("Failed to save new round session",
				zap.String("section", string(sc.section)),
				zap.Error(err),
			)
		}
	}

	metrics.RecordSessionOpened(string(sc.section), string(session.Mode))
	return sessionView(session), nil
}

// snapshotReplayable 判断已存记录的快照能否回放。
// 解析失败的记录不锁 scope，员工可以重新巡一遍
func snapshotReplayable(details []byte) bool {
	_, err := rounds.ParseDetails(details)
	return err == nil
}

// loadEditableSession 签字前的所有会话变更都从这里取会话：
// scope 已有可回放的签字记录时直接拒绝
func (s *RoundService) loadEditableSession(ctx context.Context, sc scope) (*rounds.Session, error) {
	rec, err := s.findRoundRecord(ctx, sc)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		if snapshotReplayable([]byte(rec.Details)) {
			return nil, errors.RoundReadOnly
		}
		logger.Logger.Error("Malformed round details, keeping scope editable",
			zap.Int64("round_id", rec.PublicID),
			zap.String("section", string(sc.section)),
		)
	}

	session, err := cache.GetRoundSession(ctx, sc.dateStr(), sc.shift, sc.section)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.RoundNotOpen
	}
	return session, nil
}

func (s *RoundService) saveSession(ctx context.Context, session *rounds.Session) error {
	if err := cache.SaveRoundSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save round session: %w", err)
	}
	return nil
}

// Toggle 应用开关操作，kind 取 health/water/secure
func (s *RoundService) Toggle(ctx context.Context, req dto.ToggleRequest, now time.Time) (*dto.SessionResponse, error) {
	sc, err := s.resolveScope(req.Date, req.Shift, req.Section, now)
	if err != nil {
		return nil, err
	}

	session, err := s.loadEditableSession(ctx, sc)
	if err != nil {
		return nil, err
	}

	switch req.Kind {
	case "health":
		_, err = session.ToggleHealth(req.AnimalID)
	case "water":
		err = session.ToggleWater(req.AnimalID)
	case "secure":
		_, err = session.ToggleSecure(req.AnimalID)
	default:
		err = errors.InvalidToggleKind
	}
	if err != nil {
		return nil, err
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return sessionView(session), nil
}

// ConfirmIssue 确认待处理的问题报告
func (s *RoundService) ConfirmIssue(ctx context.Context, req dto.IssueConfirmRequest, now time.Time) (*dto.SessionResponse, error) {
	sc, err := s.resolveScope(req.Date, req.Shift, req.Section, now)
	if err != nil {
		return nil, err
	}

	session, err := s.loadEditableSession(ctx, sc)
	if err != nil {
		return nil, err
	}

	pending := session.Pending
	if err := session.ConfirmIssueFor(req.AnimalID, rounds.IssueKind(req.Kind), req.Note); err != nil {
		return nil, err
	}

	if pending != nil {
		metrics.RecordIssueReport(string(pending.Kind), string(sc.section))
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return sessionView(session), nil
}

// CancelIssue 取消待处理的问题报告
func (s *RoundService) CancelIssue(ctx context.Context, req dto.IssueCancelRequest, now time.Time) (*dto.SessionResponse, error) {
	sc, err := s.resolveScope(req.Date, req.Shift, req.Section, now)
	if err != nil {
		return nil, err
	}

	session, err := s.loadEditableSession(ctx, sc)
	if err != nil {
		return nil, err
	}

	if err := session.CancelIssue(); err != nil {
		return nil, err
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return sessionView(session), nil
}

// UpdateNotes 更新分区备注
func (s *RoundService) UpdateNotes(ctx context.Context, req dto.NotesRequest, now time.Time) (*dto.SessionResponse, error) {
	sc, err := s.resolveScope(req.Date, req.Shift, req.Section, now)
	if err != nil {
		return nil, err
	}

	session, err := s.loadEditableSession(ctx, sc)
	if err != nil {
		return nil, err
	}

	if err := session.SetGeneralNotes(req.Notes); err != nil {
		return nil, err
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return sessionView(session), nil
}

// SignOff 签字：校验通过后把完整 CheckState 快照和派生事件
// 一起落库，唯一索引兜底并发签字
func (s *RoundService) SignOff(ctx context.Context, req dto.SignOffRequest, staffUserID string, now time.Time) (*dto.SignOffResponse, error) {
	sc, err := s.resolveScope(req.Date, req.Shift, req.Section, now)
	if err != nil {
		return nil, err
	}

	session, err := s.loadEditableSession(ctx, sc)
	if err != nil {
		return nil, err
	}

	if req.Initials != "" {
		if err := session.SetInitials(req.Initials); err != nil {
			return nil, err
		}
	}

	if err := session.ValidateSignOff(); err != nil {
		return nil, err
	}

	staff, err := s.staffByPublicID(ctx, staffUserID)
	if err != nil {
		return nil, err
	}

	details, err := rounds.BuildDetails(session.Checks)
	if err != nil {
		return nil, fmt.Errorf("failed to build round details: %w", err)
	}

	roundID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate round ID: %w", err)
	}

	progress := session.Progress()
	drafts := session.BuildIncidents()

	record := &model.RoundRecord{
		PublicID:       roundID,
		RoundDate:      sc.date,
		Shift:          string(sc.shift),
		Section:        string(sc.section),
		SignedBy:       session.Initials,
		SignedByUserID: staff.PublicID,
		StaffName:      staff.Name,
		TotalChecked:   progress.Total,
		IssuesFound:    session.IssuesFound(),
		GeneralNotes:   session.GeneralNotes,
		Details:        model.RoundDetails(details),
		SignedAt:       now,
	}

	incidents, err := s.buildIncidentRows(drafts, roundID, sc, now)
	if err != nil {
		return nil, err
	}

	// 记录和事件一个事务落库
	err = database.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.RoundRecord
		ferr := tx.Where("round_date = ? AND shift = ? AND section = ?",
			sc.date, string(sc.shift), string(sc.section)).
			First(&existing).Error
		switch {
		case ferr == nil:
			if snapshotReplayable([]byte(existing.Details)) {
				return errors.RoundAlreadySigned
			}
			// 快照损坏的旧记录让位给重巡结果，硬删腾出唯一索引
			if derr := tx.Unscoped().Delete(&existing).Error; derr != nil {
				return derr
			}
		case !stderrors.Is(ferr, gorm.ErrRecordNotFound):
			return ferr
		}

		if err := tx.Create(record).Error; err != nil {
			return err
		}
		if len(incidents) > 0 {
			if err := tx.Create(&incidents).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if def, ok := err.(errors.Definition); ok {
			return nil, def
		}
		// 并发签字撞唯一索引，翻译成业务错误而不是静默覆盖
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.RoundAlreadySigned
		}
		return nil, fmt.Errorf("failed to persist round record: %w", err)
	}

	if err := cache.DeleteRoundSession(ctx, sc.dateStr(), sc.shift, sc.section); err != nil {
		logger.Logger.Warn("Failed to delete round session after sign-off",
			zap.String("section", string(sc.section)),
			zap.Error(err),
		)
	}

	s.publishSignOffEvents(ctx, record, incidents)

	metrics.RecordRoundSignedOff(string(sc.shift), string(sc.section), record.IssuesFound)

	logger.Logger.Info("Round signed off",
		zap.Int64("round_id", roundID),
		zap.String("date", sc.dateStr()),
		zap.String("shift", string(sc.shift)),
		zap.String("section", string(sc.section)),
		zap.Int("total_checked", record.TotalChecked),
		zap.Int("issues_found", record.IssuesFound),
	)

	return &dto.SignOffResponse{
		RoundID:       strconv.FormatInt(roundID, 10),
		TotalChecked:  record.TotalChecked,
		IssuesFound:   record.IssuesFound,
		IncidentCount: len(incidents),
		SignedAt:      now.Format(time.RFC3339),
	}, nil
}

func (s *RoundService) buildIncidentRows(drafts []rounds.IncidentDraft, roundID int64, sc scope, now time.Time) ([]model.Incident, error) {
	incidents := make([]model.Incident, 0, len(drafts))
	for _, d := range drafts {
		incidentID, err := snowflake.NextID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate incident ID: %w", err)
		}

		animalID, err := strconv.ParseInt(d.AnimalID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid animal ID in incident draft: %w", err)
		}

		incidents = append(incidents, model.Incident{
			PublicID:      incidentID,
			AnimalID:      animalID,
			AnimalName:    d.AnimalName,
			RoundRecordID: roundID,
			IncidentDate:  sc.date,
			IncidentTime:  now,
			Type:          string(d.Type),
			Description:   d.Description,
			Severity:      model.IncidentSeverityHigh,
			Status:        model.IncidentStatusOpen,
			ReportedBy:    d.ReportedBy,
		})
	}
	return incidents, nil
}

// publishSignOffEvents 落库成功后投递事件消息，失败只记日志，
// 不回滚已签字的记录
func (s *RoundService) publishSignOffEvents(ctx context.Context, record *model.RoundRecord, incidents []model.Incident) {
	if err := queue.PublishRoundSignedOffEvent(ctx, record.PublicID,
		record.RoundDate.Format(utils.DateLayout), record.Shift, record.Section, record.IssuesFound); err != nil {
		logger.Logger.Error("Failed to publish round signed off event",
			zap.Int64("round_id", record.PublicID),
			zap.Error(err),
		)
	}

	for _, inc := range incidents {
		msg := queue.IncidentAlertMessage{
			IncidentID:  inc.PublicID,
			AnimalID:    inc.AnimalID,
			AnimalName:  inc.AnimalName,
			Type:        inc.Type,
			Description: inc.Description,
			OccurredAt:  inc.IncidentTime.Format(time.RFC3339),
		}
		if err := queue.PublishIncidentAlert(ctx, msg); err != nil {
			logger.Logger.Error("Failed to publish incident alert",
				zap.Int64("incident_id", inc.PublicID),
				zap.Error(err),
			)
		}
	}
}

// History 历史巡查记录查询
func (s *RoundService) History(ctx context.Context, q dto.RoundHistoryQuery, now time.Time) (*dto.RoundHistoryResponse, error) {
	db := database.DB().WithContext(ctx).Model(&model.RoundRecord{})

	if q.Date != "" {
		date, err := utils.ParseDate(q.Date, now)
		if err != nil {
			return nil, errors.InvalidDate
		}
		db = db.Where("round_date = ?", date)
	}
	if q.Section != "" {
		section, err := rounds.ParseSection(q.Section)
		if err != nil {
			return nil, err
		}
		db = db.Where("section = ?", string(section))
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count round records: %w", err)
	}

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var records []model.RoundRecord
	err := db.Order("round_date DESC, shift DESC").
		Limit(limit).Offset(q.Offset).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query round records: %w", err)
	}

	views := make([]dto.RoundRecordView, 0, len(records))
	for _, rec := range records {
		views = append(views, dto.RoundRecordView{
			RoundID:      strconv.FormatInt(rec.PublicID, 10),
			Date:         rec.RoundDate.Format(utils.DateLayout),
			Shift:        rec.Shift,
			Section:      rec.Section,
			SignedBy:     rec.SignedBy,
			StaffName:    rec.StaffName,
			TotalChecked: rec.TotalChecked,
			IssuesFound:  rec.IssuesFound,
			GeneralNotes: rec.GeneralNotes,
			SignedAt:     rec.SignedAt.Format(time.RFC3339),
		})
	}

	return &dto.RoundHistoryResponse{Records: views, Total: total}, nil
}

// ========== 辅助 ==========

func (s *RoundService) staffByPublicID(ctx context.Context, staffUserID string) (*model.StaffUser, error) {
	publicID, err := strconv.ParseInt(staffUserID, 10, 64)
	if err != nil {
		return nil, errors.InvalidUserID
	}

	var staff model.StaffUser
	err = database.DB().WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&staff).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.StaffNotFound
		}
		return nil, fmt.Errorf("failed to query staff user: %w", err)
	}

	if !staff.Active {
		return nil, errors.StaffDeactivated
	}
	return &staff, nil
}

func (s *RoundService) staffInitials(ctx context.Context, staffUserID string) (string, error) {
	staff, err := s.staffByPublicID(ctx, staffUserID)
	if err != nil {
		return "", err
	}
	return staff.Initials, nil
}

// sessionView 把会话映射成响应视图
func sessionView(session *rounds.Session) *dto.SessionResponse {
	animals := make([]dto.AnimalCheckView, 0, len(session.Animals))
	for _, a := range session.Animals {
		cs := session.Checks[a.ID]
		animals = append(animals, dto.AnimalCheckView{
			AnimalID:      a.ID,
			Name:          a.Name,
			IsAlive:       cs.Alive,
			IsWatered:     cs.Watered,
			IsSecure:      cs.Secure,
			HealthIssue:   cs.HealthIssue,
			SecurityIssue: cs.SecurityIssue,
		})
	}

	progress := session.Progress()

	view := &dto.SessionResponse{
		Date:         session.Date,
		Shift:        string(session.Shift),
		Section:      string(session.Section),
		Mode:         string(session.Mode),
		Initials:     session.Initials,
		SignedBy:     session.SignedBy,
		GeneralNotes: session.GeneralNotes,
		Animals:      animals,
		Progress: dto.ProgressView{
			Total:      progress.Total,
			Completed:  progress.Completed,
			Percent:    progress.Percent,
			IsComplete: progress.IsComplete,
		},
		NoteRequired: session.NoteRequired(),
		CanSignOff:   session.CanSignOff(),
	}

	if session.Pending != nil {
		view.PendingIssue = &dto.PendingIssueView{
			AnimalID: session.Pending.AnimalID,
			Kind:     string(session.Pending.Kind),
		}
	}

	return view
}
