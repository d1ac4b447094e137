package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"AllWell/config"
	"AllWell/internal/model"
	"AllWell/internal/queue"
	"AllWell/pkg/logger"
	"AllWell/pkg/metrics"
	"AllWell/pkg/sms"
	"AllWell/pkg/snowflake"
	"AllWell/storage/database"
)

type NotificationService struct{}

var (
	notificationService *NotificationService
	notificationOnce    sync.Once
)

func Notification() *NotificationService {
	notificationOnce.Do(func() {
		notificationService = &NotificationService{}
	})
	return notificationService
}

// DispatchIncidentAlert 消费告警消息：群发值班负责人短信并落库留痕
func (s *NotificationService) DispatchIncidentAlert(ctx context.Context, msg queue.IncidentAlertMessage) error {
	phones := config.Cfg.DutyManagerPhones
	if len(phones) == 0 {
		logger.Logger.Warn("No duty manager phones configured, skipping incident alert",
			zap.Int64("incident_id", msg.IncidentID),
		)
		return nil
	}

	taskCode, err := snowflake.NextID()
	if err != nil {
		return fmt.Errorf("failed to generate task code: %w", err)
	}

	start := time.Now()
	sendErr := sms.SendIncidentAlert(ctx, phones, msg.AnimalName, msg.Type)
	duration := time.Since(start)

	status := model.NotificationTaskStatusSuccess
	if sendErr != nil {
		status = model.NotificationTaskStatusFailed
		metrics.RecordSMSFailed(config.Cfg.SMSTemplateCode, config.Cfg.SMSProvider, duration.Seconds())
	} else {
		metrics.RecordSMSSent(config.Cfg.SMSTemplateCode, config.Cfg.SMSProvider, duration.Seconds())
	}

	now := time.Now()
	task := &model.NotificationTask{
		TaskCode:   taskCode,
		IncidentID: msg.IncidentID,
		Category:   "incident_alert",
		Payload: model.JSONB{
			"message_id":  msg.MessageID,
			"animal_id":   msg.AnimalID,
			"animal_name": msg.AnimalName,
			"type":        msg.Type,
			"description": msg.Description,
		},
		Recipients:  len(phones),
		Status:      status,
		ProcessedAt: &now,
	}

	if err := database.DB().WithContext(ctx).Create(task).Error; err != nil {
		logger.Logger.Error("Failed to record notification task",
			zap.Int64("task_code", taskCode),
			zap.Int64("incident_id", msg.IncidentID),
			zap.Error(err),
		)
		// 短信已经发出，留痕失败不触发重发
	}

	if sendErr != nil {
		return fmt.Errorf("failed to send incident alert SMS: %w", sendErr)
	}

	logger.Logger.Info("Incident alert dispatched",
		zap.Int64("incident_id", msg.IncidentID),
		zap.Int("recipients", len(phones)),
	)
	return nil
}

// DispatchRoundReminder 消费到期的巡查提醒：签字了就静默丢弃，否则短信提醒
func (s *NotificationService) DispatchRoundReminder(ctx context.Context, msg queue.RoundReminderMessage) error {
	var count int64
	err := database.DB().WithContext(ctx).
		Model(&model.RoundRecord{}).
		Where("round_date = ? AND shift = ? AND section = ?", msg.RoundDate, msg.Shift, msg.Section).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check round record: %w", err)
	}
	if count > 0 {
		logger.Logger.Info("Round already signed off, reminder dropped",
			zap.String("round_date", msg.RoundDate),
			zap.String("shift", msg.Shift),
			zap.String("section", msg.Section),
		)
		return nil
	}

	phones := config.Cfg.DutyManagerPhones
	if len(phones) == 0 {
		logger.Logger.Warn("No duty manager phones configured, skipping round reminder",
			zap.String("section", msg.Section),
		)
		return nil
	}

	taskCode, err := snowflake.NextID()
	if err != nil {
		return fmt.Errorf("failed to generate task code: %w", err)
	}

	start := time.Now()
	sendErr := sms.SendRoundReminder(ctx, phones, msg.RoundDate, msg.Shift, msg.Section)
	duration := time.Since(start)

	status := model.NotificationTaskStatusSuccess
	if sendErr != nil {
		status = model.NotificationTaskStatusFailed
		metrics.RecordSMSFailed(config.Cfg.SMSReminderTemplateCode, config.Cfg.SMSProvider, duration.Seconds())
	} else {
		metrics.RecordSMSSent(config.Cfg.SMSReminderTemplateCode, config.Cfg.SMSProvider, duration.Seconds())
	}

	now := time.Now()
	task := &model.NotificationTask{
		TaskCode: taskCode,
		Category: "round_reminder",
		Payload: model.JSONB{
			"message_id": msg.MessageID,
			"round_date": msg.RoundDate,
			"shift":      msg.Shift,
			"section":    msg.Section,
		},
		Recipients:  len(phones),
		Status:      status,
		ProcessedAt: &now,
	}

	if err := database.DB().WithContext(ctx).Create(task).Error; err != nil {
		logger.Logger.Error("Failed to record notification task",
			zap.Int64("task_code", taskCode),
			zap.Error(err),
		)
	}

	if sendErr != nil {
		return fmt.Errorf("failed to send round reminder SMS: %w", sendErr)
	}

	logger.Logger.Info("Round reminder dispatched",
		zap.String("round_date", msg.RoundDate),
		zap.String("shift", msg.Shift),
		zap.String("section", msg.Section),
		zap.Int("recipients", len(phones)),
	)
	return nil
}
