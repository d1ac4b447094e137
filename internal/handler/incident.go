package handler

import (
	"AllWell/internal/model/dto"
	"AllWell/internal/service"
	"AllWell/pkg/errors"
	"AllWell/pkg/response"
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
)

// ListIncidents 分页查询事故记录
// GET /v1/incidents
func ListIncidents(ctx context.Context, c *app.RequestContext) {
	var q dto.ListIncidentsQuery
	if err := c.BindAndValidate(&q); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Incident().List(ctx, q, time.Now())
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// UpdateIncidentStatus 推进事故处理状态
// PATCH /v1/incidents/:incident_id/status
func UpdateIncidentStatus(ctx context.Context, c *app.RequestContext) {
	incidentID := c.Param("incident_id")
	if incidentID == "" {
		response.Error(ctx, c, errors.IncidentNotFound)
		return
	}

	var req dto.UpdateIncidentStatusRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Incident().UpdateStatus(ctx, incidentID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
