package handler

import (
	"AllWell/internal/middleware"
	"AllWell/internal/model/dto"
	"AllWell/internal/service"
	"AllWell/pkg/response"
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
)

// OpenRoundSession 打开或恢复一个巡查会话
// GET /v1/rounds/session
func OpenRoundSession(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("user ID not found in context"))
		return
	}

	var req dto.OpenSessionRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Round().OpenSession(ctx, req, userID, time.Now())
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ToggleCheck 切换单只动物的某项检查
// POST /v1/rounds/session/toggle
func ToggleCheck(ctx context.Context, c *app.RequestContext) {
	var req dto.ToggleRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Round().Toggle(ctx, req, time.Now())
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ConfirmIssue 为待确认的问题报告提交说明
// POST /v1/rounds/session/issue/confirm
func ConfirmIssue(ctx context.Context, c *app.RequestContext) {
	var req dto.IssueConfirmRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Round().ConfirmIssue(ctx, req, time.Now())
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// CancelIssue 放弃待确认的问题报告
// POST /v1/rounds/session/issue/cancel
func CancelIssue(ctx context.Context, c *app.RequestContext) {
	var req dto.IssueCancelRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Round().CancelIssue(ctx, req, time.Now())
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// UpdateRoundNotes 更新分区备注
// PUT /v1/rounds/session/notes
func UpdateRoundNotes(ctx context.Context, c *app.RequestContext) {
	var req dto.NotesRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Round().UpdateNotes(ctx, req, time.Now())
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// SignOffRound 签字归档当前巡查
// POST /v1/rounds/session/sign-off
func SignOffRound(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("user ID not found in context"))
		return
	}

	var req dto.SignOffRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Round().SignOff(ctx, req, userID, time.Now())
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetRoundHistory 分页查询历史巡查记录
// GET /v1/rounds/history
func GetRoundHistory(ctx context.Context, c *app.RequestContext) {
	var q dto.RoundHistoryQuery
	if err := c.BindAndValidate(&q); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Round().History(ctx, q, time.Now())
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
