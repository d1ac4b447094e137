package cache

import (
	"context"
	"time"

	"AllWell/internal/model"
)

// 动物名册读多写少，走带空值保护的缓存，Redis 故障时熔断直查库

var (
	rosterCache   = NewProtectedCache("animal:roster", 10*time.Minute)
	rosterBreaker = NewCircuitBreaker("animal-roster", 5, 30*time.Second)
)

// GetSectionRoster 读取分区名册缓存，未命中返回 (nil, false, nil)
func GetSectionRoster(ctx context.Context, section string) ([]model.Animal, bool, error) {
	var animals []model.Animal
	var hit bool

	err := rosterBreaker.Call(ctx, func() error {
		var err error
		hit, err = rosterCache.Get(ctx, section, &animals)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return animals, hit, nil
}

// SetSectionRoster 写入分区名册缓存
func SetSectionRoster(ctx context.Context, section string, animals []model.Animal) error {
	return rosterBreaker.Call(ctx, func() error {
		return rosterCache.Set(ctx, section, animals)
	})
}

// InvalidateSectionRoster 名册变更后清除缓存
func InvalidateSectionRoster(ctx context.Context, section string) error {
	return rosterCache.Delete(ctx, section)
}
