package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"AllWell/internal/cache"
	"AllWell/pkg/errors"
	"AllWell/pkg/logger"
	"AllWell/storage/mq"
)

// AlertSender worker 启动时注入的告警发送实现，避免包循环依赖
type AlertSender interface {
	DispatchIncidentAlert(ctx context.Context, msg IncidentAlertMessage) error
}

var alertSender AlertSender

// SetAlertSender 设置告警发送服务（在 worker 启动时调用）
func SetAlertSender(s AlertSender) {
	alertSender = s
}

// ReminderSender 巡查提醒发送实现，同样由 worker 注入
type ReminderSender interface {
	DispatchRoundReminder(ctx context.Context, msg RoundReminderMessage) error
}

var reminderSender ReminderSender

// SetReminderSender 设置提醒发送服务（在 worker 启动时调用）
func SetReminderSender(s ReminderSender) {
	reminderSender = s
}

// StartIncidentAlertConsumer 启动事件告警消费者
func StartIncidentAlertConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg IncidentAlertMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal incident alert message: %w", err)
		}

		// 【幂等性检查】使用 SETNX 原子性地检查并标记消息正在处理
		marked, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
			// 如果检查失败，继续处理（不阻塞业务），但可能重复处理
		} else if !marked {
			logger.Logger.Info("Message already processed or being processed, skipping",
				zap.String("message_id", msg.MessageID),
				zap.Int64("incident_id", msg.IncidentID),
			)
			return &errors.SkipMessageError{Reason: fmt.Sprintf("Message %s already processed", msg.MessageID)}
		}

		logger.Logger.Info("Processing incident alert",
			zap.String("message_id", msg.MessageID),
			zap.Int64("incident_id", msg.IncidentID),
			zap.String("type", msg.Type),
		)

		if alertSender == nil {
			cache.UnmarkMessageProcessing(ctx, msg.MessageID)
			return fmt.Errorf("alert sender not configured")
		}

		if err := alertSender.DispatchIncidentAlert(ctx, msg); err != nil {
			// 处理失败，取消标记，允许重试
			cache.UnmarkMessageProcessing(ctx, msg.MessageID)
			return fmt.Errorf("failed to dispatch incident alert: %w", err)
		}

		if err := cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}

		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.QueueIncidentAlert,
		ConsumerTag:   "incident_alert_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// StartRoundReminderConsumer 启动巡查提醒消费者，消费延迟交换机投递的到期提醒
func StartRoundReminderConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg RoundReminderMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal round reminder message: %w", err)
		}

		marked, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		} else if !marked {
			logger.Logger.Info("Message already processed or being processed, skipping",
				zap.String("message_id", msg.MessageID),
			)
			return &errors.SkipMessageError{Reason: fmt.Sprintf("Message %s already processed", msg.MessageID)}
		}

		logger.Logger.Info("Processing round reminder",
			zap.String("message_id", msg.MessageID),
			zap.String("round_date", msg.RoundDate),
			zap.String("shift", msg.Shift),
			zap.String("section", msg.Section),
		)

		if reminderSender == nil {
			cache.UnmarkMessageProcessing(ctx, msg.MessageID)
			return fmt.Errorf("reminder sender not configured")
		}

		if err := reminderSender.DispatchRoundReminder(ctx, msg); err != nil {
			cache.UnmarkMessageProcessing(ctx, msg.MessageID)
			return fmt.Errorf("failed to dispatch round reminder: %w", err)
		}

		if err := cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}

		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.QueueRoundReminder,
		ConsumerTag:   "round_reminder_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// StartAllConsumers 启动全部消费者，阻塞直到 ctx 取消
func StartAllConsumers(ctx context.Context) {
	var wg sync.WaitGroup

	consumers := []struct {
		name string
		run  func(context.Context) error
	}{
		{"incident_alert", StartIncidentAlertConsumer},
		{"round_reminder", StartRoundReminderConsumer},
	}

	for _, c := range consumers {
		wg.Add(1)
		go func(name string, run func(context.Context) error) {
			defer wg.Done()

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				if err := run(ctx); err != nil {
					logger.Logger.Error("Consumer stopped with error, restarting",
						zap.String("consumer", name),
						zap.Error(err),
					)
				}

				select {
				case <-ctx.Done():
					return
				case <-time.After(5 * time.Second):
				}
			}
		}(c.name, c.run)
	}

	wg.Wait()
}
