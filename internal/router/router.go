package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"AllWell/internal/handler"
	"AllWell/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RequestIDMiddleware())
	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())
	v1 := h.Group("/v1")

	// 认证相关路由
	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware()) // 认证接口限流
	{
		auth.POST("/login", handler.Login)
		auth.POST("/token/refresh", handler.RefreshToken)
	}

	// 已登录的认证路由
	authed := v1.Group("/auth")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("/logout", handler.Logout)
		authed.GET("/me", handler.GetCurrentStaff)
	}

	// 动物名册路由
	animals := v1.Group("")
	animals.Use(middleware.AuthMiddleware())
	{
		animals.GET("/animals", handler.ListAnimals)
		animals.GET("/sections", handler.ListSections)
	}

	// 巡查路由
	rounds := v1.Group("/rounds")
	rounds.Use(middleware.AuthMiddleware())
	{
		rounds.GET("/session", handler.OpenRoundSession)
		rounds.POST("/session/toggle", handler.ToggleCheck)
		rounds.POST("/session/issue/confirm", handler.ConfirmIssue)
		rounds.POST("/session/issue/cancel", handler.CancelIssue)
		rounds.PUT("/session/notes", handler.UpdateRoundNotes)
		rounds.POST("/session/sign-off", middleware.SignOffRateLimitMiddleware(), handler.SignOffRound)
		rounds.GET("/history", handler.GetRoundHistory)
	}

	// 事故记录路由
	incidents := v1.Group("/incidents")
	incidents.Use(middleware.AuthMiddleware())
	{
		incidents.GET("", handler.ListIncidents)
		incidents.PATCH("/:incident_id/status", handler.UpdateIncidentStatus)
	}
}
