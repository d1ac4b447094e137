package handler

import (
	"AllWell/internal/model/dto"
	"AllWell/internal/service"
	"AllWell/pkg/response"
	"context"

	"github.com/cloudwego/hertz/pkg/app"
)

// ListAnimals 查询某分区的动物名册
// GET /v1/animals
func ListAnimals(ctx context.Context, c *app.RequestContext) {
	var req dto.ListAnimalsRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Animal().ListAnimals(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListSections 列出全部分区
// GET /v1/sections
func ListSections(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, service.Animal().ListSections())
}
