package schedule

// 巡查调度器：在班次截止前扫描未签字的分区，投递延迟提醒消息

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"AllWell/config"
	"AllWell/internal/cache"
	"AllWell/internal/model"
	"AllWell/internal/queue"
	"AllWell/internal/rounds"
	"AllWell/pkg/logger"
	"AllWell/pkg/snowflake"
	"AllWell/storage/database"
	"AllWell/utils"
)

var (
	schedulerOnce sync.Once
	schedulerInst *RoundScheduler
)

type RoundScheduler struct {
	logger             *zap.Logger
	reminderJobRunning bool
	reminderJobMu      sync.Mutex
	lastReminderJobAt  time.Time
}

func GetScheduler() *RoundScheduler {
	schedulerOnce.Do(func() {
		schedulerInst = &RoundScheduler{
			logger: logger.Logger,
		}
	})
	return schedulerInst
}

// shiftEnd 返回某班次在 day 当天的截止时刻
func shiftEnd(day time.Time, shift rounds.Shift) time.Time {
	hour := config.Cfg.EveningShiftEndHour
	if shift == rounds.ShiftMorning {
		hour = config.Cfg.MorningShiftEndHour
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}

// ScheduleRoundReminders 为当前班次尚未签字的分区投递提醒
//
// 多实例场景靠 Redis 锁保证单次执行，提醒靠 scheduled 标记去重，
// 签字与否以 round_records 里是否存在该 scope 的记录为准。
func (s *RoundScheduler) ScheduleRoundReminders(ctx context.Context) error {
	s.reminderJobMu.Lock()
	if s.reminderJobRunning {
		s.reminderJobMu.Unlock()
		s.logger.Info("Reminder job already running, skipping")
		return nil
	}
	s.reminderJobRunning = true
	s.reminderJobMu.Unlock()

	defer func() {
		s.reminderJobMu.Lock()
		s.reminderJobRunning = false
		s.reminderJobMu.Unlock()
	}()

	now := time.Now()
	s.lastReminderJobAt = now

	today := now.Format(utils.DateLayout)
	shift := rounds.DefaultShiftFor(now)

	end := shiftEnd(now, shift)
	remindAt := end.Add(-time.Duration(config.Cfg.RoundReminderLeadMin) * time.Minute)
	if now.After(end) {
		// 班次已截止，提醒没有意义，等下一个班次
		return nil
	}

	lockKey := fmt.Sprintf("round:reminder:job:%s:%s", today, shift)
	locked, err := cache.TryLock(ctx, lockKey, 2*time.Minute)
	if err != nil {
		s.logger.Error("Failed to acquire reminder job lock", zap.Error(err))
		return fmt.Errorf("failed to acquire reminder job lock: %w", err)
	}
	if !locked {
		s.logger.Info("Another instance is scheduling reminders, skipping")
		return nil
	}
	defer func() {
		if err := cache.Unlock(ctx, lockKey); err != nil {
			s.logger.Warn("Failed to release reminder job lock", zap.Error(err))
		}
	}()

	batchID := uuid.NewString()

	s.logger.Info("Starting round reminder scheduler",
		zap.String("round_date", today),
		zap.String("shift", string(shift)),
		zap.Time("remind_at", remindAt),
	)

	scheduled := 0
	var errs []error
	for _, section := range rounds.AllSections {
		ok, err := s.scheduleSection(ctx, today, shift, section, batchID, now, remindAt)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			scheduled++
		}
	}

	s.logger.Info("Round reminder scheduler completed",
		zap.String("round_date", today),
		zap.String("shift", string(shift)),
		zap.Int("scheduled_count", scheduled),
		zap.Int("error_count", len(errs)),
	)

	if len(errs) > 0 {
		return fmt.Errorf("scheduler completed with %d errors", len(errs))
	}
	return nil
}

// scheduleSection 为单个分区投递提醒，已签字或已投递过则跳过
func (s *RoundScheduler) scheduleSection(
	ctx context.Context,
	today string,
	shift rounds.Shift,
	section rounds.Section,
	batchID string,
	now time.Time,
	remindAt time.Time,
) (bool, error) {
	already, err := cache.IsReminderScheduled(ctx, today, string(shift), string(section))
	if err != nil {
		s.logger.Warn("Failed to check reminder scheduled status",
			zap.String("section", string(section)),
			zap.Error(err),
		)
		// 查不到标记时继续走数据库判断，宁可多发也不漏发
	}
	if already {
		return false, nil
	}

	var count int64
	err = database.DB().WithContext(ctx).
		Model(&model.RoundRecord{}).
		Where("round_date = ? AND shift = ? AND section = ?", today, string(shift), string(section)).
		Count(&count).Error
	if err != nil {
		s.logger.Error("Failed to query signed round record",
			zap.String("section", string(section)),
			zap.Error(err),
		)
		return false, fmt.Errorf("failed to query round record for %s: %w", section, err)
	}
	if count > 0 {
		// 已签字的分区不需要提醒
		return false, nil
	}

	delay := time.Until(remindAt)
	if delay < 0 {
		delay = 0
	}

	messageID, err := snowflake.NextID()
	if err != nil {
		s.logger.Error("Failed to generate message ID", zap.Error(err))
		return false, err
	}

	msg := queue.RoundReminderMessage{
		MessageID:    fmt.Sprintf("round_reminder_%d", messageID),
		BatchID:      batchID,
		RoundDate:    today,
		Shift:        string(shift),
		Section:      string(section),
		ScheduledAt:  now.Format(time.RFC3339),
		DelaySeconds: int(delay.Seconds()),
	}

	if err := queue.PublishRoundReminder(ctx, msg); err != nil {
		s.logger.Error("Failed to publish round reminder",
			zap.String("section", string(section)),
			zap.Error(err),
		)
		return false, err
	}

	if err := cache.MarkReminderScheduled(ctx, today, string(shift), string(section)); err != nil {
		s.logger.Warn("Failed to mark reminder scheduled after publishing message",
			zap.String("section", string(section)),
			zap.Error(err),
		)
		// 标记失败不影响主流程，消息已经在 MQ 里了
	}

	s.logger.Info("Scheduled round reminder",
		zap.String("round_date", today),
		zap.String("shift", string(shift)),
		zap.String("section", string(section)),
		zap.Duration("delay", delay),
	)
	return true, nil
}
