package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware 请求没带 X-Request-ID 时补一个，响应原样带回，
// 方便跨服务排查日志
func RequestIDMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		requestID := string(c.GetHeader(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Response.Header.Set(RequestIDHeader, requestID)

		c.Next(ctx)
	}
}

// GetRequestID 从请求上下文取出请求 ID
func GetRequestID(c *app.RequestContext) string {
	if v, ok := c.Get("request_id"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
