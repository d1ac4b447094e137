package queue

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"AllWell/pkg/logger"
	"AllWell/pkg/snowflake"
	"AllWell/storage/mq"
)

// PublishIncidentAlert 发布事件告警任务消息
func PublishIncidentAlert(ctx context.Context, msg IncidentAlertMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.Int64("incident_id", msg.IncidentID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("incident_alert_%d", id)
	}

	err := mq.PublishMessage(
		ctx,
		mq.ExchangeRounds,
		mq.RoutingKeyIncidentAlert,
		msg,
	)

	if err != nil {
		logger.Logger.Error("Failed to publish incident alert message",
			zap.String("message_id", msg.MessageID),
			zap.Int64("incident_id", msg.IncidentID),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published incident alert message",
		zap.String("message_id", msg.MessageID),
		zap.Int64("incident_id", msg.IncidentID),
		zap.String("type", msg.Type),
	)

	return nil
}

// PublishRoundReminder 发布巡查提醒消息（延迟消息）
func PublishRoundReminder(ctx context.Context, msg RoundReminderMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.String("batch_id", msg.BatchID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("round_reminder_%d", id)
	}

	delay := time.Duration(msg.DelaySeconds) * time.Second

	// 延迟交换机插件的上限，超过应由定时扫描兜底
	if delay > 24*time.Hour {
		return fmt.Errorf("delay %v exceeds 24 hours limit, use scheduled task instead", delay)
	}

	err := mq.PublishDelayedMessage(
		ctx,
		mq.ExchangeScheduler,
		mq.RoutingKeyReminder,
		delay,
		msg,
	)

	if err != nil {
		logger.Logger.Error("Failed to publish round reminder message",
			zap.String("message_id", msg.MessageID),
			zap.String("section", msg.Section),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published round reminder message",
		zap.String("message_id", msg.MessageID),
		zap.String("round_date", msg.RoundDate),
		zap.String("shift", msg.Shift),
		zap.String("section", msg.Section),
		zap.Duration("delay", delay),
	)

	return nil
}

// PublishRoundSignedOffEvent 发布巡查签字完成事件
func PublishRoundSignedOffEvent(ctx context.Context, roundID int64, date, shift, section string, issuesFound int) error {
	event := EventMessage{
		EventKey:   "round.signed_off",
		EventType:  "round_signed_off",
		OccurredAt: time.Now().Format(time.RFC3339),
		Payload: map[string]interface{}{
			"round_id":     roundID,
			"round_date":   date,
			"shift":        shift,
			"section":      section,
			"issues_found": issuesFound,
		},
	}

	err := mq.PublishMessage(
		ctx,
		mq.ExchangeRounds,
		mq.RoutingKeySignedOff,
		event,
	)

	if err != nil {
		logger.Logger.Error("Failed to publish round signed off event",
			zap.Int64("round_id", roundID),
			zap.String("section", section),
			zap.Error(err),
		)
		return err
	}

	return nil
}
