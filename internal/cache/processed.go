package cache

import (
	"context"
	"fmt"
	"time"

	"AllWell/storage/redis"
)

const (
	messageProcessedPrefix  = "message:processed"
	reminderScheduledPrefix = "round:reminder:scheduled"

	scheduledTTL = 24 * time.Hour
	processedTTL = 48 * time.Hour
)

// TryMarkMessageProcessing 尝试原子性地标记消息正在处理（使用 SETNX）
// 返回 true 表示成功标记（首次处理），false 表示已被标记（重复消息或正在处理）
func TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}

	result, err := redis.Client().SetNX(ctx, key, "processing", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark message as processing: %w", err)
	}
	return result, nil
}

// UnmarkMessageProcessing 取消消息处理标记（处理失败时调用，允许重试）
func UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	return redis.Client().Del(ctx, key).Err()
}

// MarkMessageProcessed 标记消息已处理（处理成功时调用，延长 TTL）
func MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}
	return redis.Client().Set(ctx, key, "completed", ttl).Err()
}

// ========== 巡查提醒投放标记 ==========

// scheduler 扫描到未签字 scope 时投放提醒，同一 scope 每天只投一次

func reminderKey(date, shift, section string) string {
	return redis.Key(reminderScheduledPrefix, date, shift, section)
}

// IsReminderScheduled 检查该 scope 的提醒消息是否已投放
func IsReminderScheduled(ctx context.Context, date, shift, section string) (bool, error) {
	result, err := redis.Client().Exists(ctx, reminderKey(date, shift, section)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check reminder scheduled status: %w", err)
	}
	return result > 0, nil
}

// MarkReminderScheduled 标记该 scope 的提醒消息已投放
func MarkReminderScheduled(ctx context.Context, date, shift, section string) error {
	return redis.Client().Set(ctx, reminderKey(date, shift, section), "1", scheduledTTL).Err()
}

// UnmarkReminderScheduled 清除投放标记（投放失败时调用，允许下轮扫描重试）
func UnmarkReminderScheduled(ctx context.Context, date, shift, section string) error {
	return redis.Client().Del(ctx, reminderKey(date, shift, section)).Err()
}
