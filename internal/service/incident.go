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

	"AllWell/internal/model"
	"AllWell/internal/model/dto"
	"AllWell/pkg/errors"
	"AllWell/pkg/logger"
	"AllWell/storage/database"
	"AllWell/utils"
)

var (
	incidentService *IncidentService
	incidentOnce    sync.Once
)

func Incident() *IncidentService {
	incidentOnce.Do(func() {
		incidentService = &IncidentService{}
	})
	return incidentService
}

type IncidentService struct{}

// List 事件列表查询，可按日期和状态过滤
func (s *IncidentService) List(ctx context.Context, q dto.ListIncidentsQuery, now time.Time) (*dto.ListIncidentsResponse, error) {
	db := database.DB().WithContext(ctx).Model(&model.Incident{})

	if q.Date != "" {
		date, err := utils.ParseDate(q.Date, now)
		if err != nil {
			return nil, errors.InvalidDate
		}
		db = db.Where("incident_date = ?", date)
	}
	if q.Status != "" {
		status, err := parseIncidentStatus(q.Status)
		if err != nil {
			return nil, err
		}
		db = db.Where("status = ?", string(status))
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count incidents: %w", err)
	}

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var incidents []model.Incident
	err := db.Order("incident_time DESC").
		Limit(limit).Offset(q.Offset).
		Find(&incidents).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}

	views := make([]dto.IncidentView, 0, len(incidents))
	for _, inc := range incidents {
		views = append(views, incidentView(&inc))
	}

	return &dto.ListIncidentsResponse{Incidents: views, Total: total}, nil
}

// UpdateStatus 事件状态推进，只允许 open → acknowledged → resolved
func (s *IncidentService) UpdateStatus(ctx context.Context, incidentID string, req dto.UpdateIncidentStatusRequest) (*dto.IncidentView, error) {
	publicID, err := strconv.ParseInt(incidentID, 10, 64)
	if err != nil {
		return nil, errors.IncidentNotFound
	}

	next, err := parseIncidentStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var incident model.Incident
	err = database.DB().WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&incident).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.IncidentNotFound
		}
		return nil, fmt.Errorf("failed to query incident: %w", err)
	}

	if !incident.CanTransitionTo(next) {
		return nil, errors.InvalidStatusTransition
	}

	err = database.DB().WithContext(ctx).
		Model(&incident).
		Update("status", string(next)).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update incident status: %w", err)
	}

	incident.Status = next

	logger.Logger.Info("Incident status updated",
		zap.Int64("incident_id", publicID),
		zap.String("status", string(next)),
	)

	view := incidentView(&incident)
	return &view, nil
}

func parseIncidentStatus(raw string) (model.IncidentStatus, error) {
	switch model.IncidentStatus(raw) {
	case model.IncidentStatusOpen, model.IncidentStatusAcknowledged, model.IncidentStatusResolved:
		return model.IncidentStatus(raw), nil
	default:
		return "", errors.InvalidStatusTransition
	}
}

func incidentView(inc *model.Incident) dto.IncidentView {
	return dto.IncidentView{
		ID:          strconv.FormatInt(inc.PublicID, 10),
		AnimalID:    strconv.FormatInt(inc.AnimalID, 10),
		AnimalName:  inc.AnimalName,
		Date:        inc.IncidentDate.Format(utils.DateLayout),
		Time:        inc.IncidentTime.Format(time.RFC3339),
		Type:        inc.Type,
		Description: inc.Description,
		Severity:    string(inc.Severity),
		Status:      string(inc.Status),
		ReportedBy:  inc.ReportedBy,
	}
}
