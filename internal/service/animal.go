package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"AllWell/internal/cache"
	"AllWell/internal/model"
	"AllWell/internal/model/dto"
	"AllWell/internal/rounds"
	"AllWell/pkg/logger"
	"AllWell/storage/database"
)

var (
	animalService *AnimalService
	animalOnce    sync.Once
)

func Animal() *AnimalService {
	animalOnce.Do(func() {
		animalService = &AnimalService{}
	})
	return animalService
}

type AnimalService struct{}

// SectionRoster 返回分区的巡查名单（未归档动物），缓存优先
func (s *AnimalService) SectionRoster(ctx context.Context, section rounds.Section) ([]model.Animal, error) {
	cached, hit, err := cache.GetSectionRoster(ctx, string(section))
	if err != nil {
		// 缓存故障不阻塞巡查，直查数据库
		logger.Logger.Warn("Roster cache unavailable, falling back to database",
			zap.String("section", string(section)),
			zap.Error(err),
		)
	} else if hit {
		return cached, nil
	}

	var animals []model.Animal
	err = database.DB().WithContext(ctx).
		Where("section = ? AND archived = ?", string(section), false).
		Order("name ASC").
		Find(&animals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query section roster: %w", err)
	}

	if err := cache.SetSectionRoster(ctx, string(section), animals); err != nil {
		logger.Logger.Warn("Failed to cache section roster",
			zap.String("section", string(section)),
			zap.Error(err),
		)
	}

	return animals, nil
}

// SectionRosterAll 返回分区全部动物，含已归档，用于回放历史记录
// 时还原当时的名字
func (s *AnimalService) SectionRosterAll(ctx context.Context, section rounds.Section) ([]model.Animal, error) {
	var animals []model.Animal
	err := database.DB().WithContext(ctx).
		Where("section = ?", string(section)).
		Order("name ASC").
		Find(&animals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query section roster: %w", err)
	}
	return animals, nil
}

// ListAnimals 名册查询，可带已归档动物
func (s *AnimalService) ListAnimals(ctx context.Context, req dto.ListAnimalsRequest) (*dto.ListAnimalsResponse, error) {
	section, err := rounds.ParseSection(req.Section)
	if err != nil {
		return nil, err
	}

	q := database.DB().WithContext(ctx).Where("section = ?", string(section))
	if !req.IncludeArchived {
		q = q.Where("archived = ?", false)
	}

	var animals []model.Animal
	if err := q.Order("name ASC").Find(&animals).Error; err != nil {
		return nil, fmt.Errorf("failed to list animals: %w", err)
	}

	views := make([]dto.AnimalView, 0, len(animals))
	for _, a := range animals {
		views = append(views, dto.AnimalView{
			ID:       strconv.FormatInt(a.PublicID, 10),
			Name:     a.Name,
			Species:  a.Species,
			Section:  a.Section,
			Archived: a.Archived,
		})
	}

	return &dto.ListAnimalsResponse{Animals: views}, nil
}

// ListSections 分区元数据，前端据此渲染标签页
func (s *AnimalService) ListSections() []dto.SectionView {
	views := make([]dto.SectionView, 0, len(rounds.AllSections))
	for _, sec := range rounds.AllSections {
		views = append(views, dto.SectionView{
			Name:    string(sec),
			IsAvian: sec.IsAvian(),
		})
	}
	return views
}

// rosterToRefs 把名册转成会话用的轻量引用
func rosterToRefs(animals []model.Animal) []rounds.Animal {
	refs := make([]rounds.Animal, 0, len(animals))
	for _, a := range animals {
		refs = append(refs, rounds.Animal{
			ID:   strconv.FormatInt(a.PublicID, 10),
			Name: a.Name,
		})
	}
	return refs
}
