package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"AllWell/config"
	"AllWell/internal/rounds"
	"AllWell/storage/redis"
)

const sessionPrefix = "round:session"

// 巡查会话是签字前的过渡状态，换班或遗忘时靠 TTL 自动清理

func sessionTTL() time.Duration {
	hours := config.Cfg.RoundSessionTTLHours
	if hours <= 0 {
		hours = 18
	}
	return time.Duration(hours) * time.Hour
}

func sessionKey(date string, shift rounds.Shift, section rounds.Section) string {
	return redis.Key(sessionPrefix, date, string(shift), string(section))
}

// SaveRoundSession 保存巡查会话状态
func SaveRoundSession(ctx context.Context, s *rounds.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal round session: %w", err)
	}

	key := sessionKey(s.Date, s.Shift, s.Section)
	return redis.Client().Set(ctx, key, data, sessionTTL()).Err()
}

// GetRoundSession 读取巡查会话状态，未找到返回 (nil, nil)
func GetRoundSession(ctx context.Context, date string, shift rounds.Shift, section rounds.Section) (*rounds.Session, error) {
	key := sessionKey(date, shift, section)

	data, err := redis.Client().Get(ctx, key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get round session: %w", err)
	}

	var s rounds.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal round session: %w", err)
	}
	return &s, nil
}

// DeleteRoundSession 清除巡查会话状态，签字成功后调用
func DeleteRoundSession(ctx context.Context, date string, shift rounds.Shift, section rounds.Section) error {
	key := sessionKey(date, shift, section)
	return redis.Client().Del(ctx, key).Err()
}
