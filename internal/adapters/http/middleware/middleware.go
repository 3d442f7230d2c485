// Package middleware は HTTP サーバー共通のミドルウェアを提供します。
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ogurasousui/employee-directory/internal/platform/logging"
)

const (
	// RequestIDHeader はリクエスト ID を運ぶヘッダーです。
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
)

// RequestID は X-Request-ID を引き継ぐか、無ければ UUID を採番してレスポンスに付与します。
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(requestIDKey, id)
			c.Response().Header().Set(RequestIDHeader, id)
			return next(c)
		}
	}
}

// GetRequestID は RequestID が設定した ID を返します。
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(requestIDKey).(string)
	return id
}

// ContextLogger はリクエスト ID 付きのロガーをリクエストのコンテキストに格納します。
// RequestID より後に登録してください。
func ContextLogger(base zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := base.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Logger()

			req := c.Request()
			c.SetRequest(req.WithContext(logging.WithContext(req.Context(), logger)))
			return next(c)
		}
	}
}

// RequestLogger はリクエストごとに 1 行のアクセスログを出力します。
// ハンドラがエラーを返した場合、ステータスはエラーから導出します。
func RequestLogger(base zerolog.Logger, statusOf func(error) int) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogMethod:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			status := v.Status
			if v.Error != nil && statusOf != nil {
				status = statusOf(v.Error)
			}

			logger := logging.FromContext(c.Request().Context(), base)
			var e *zerolog.Event
			switch {
			case status >= 500:
				e = logger.Error()
			case status >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.Dur("latency", v.Latency).
				Int("status", status).
				Str("uri", v.URI).
				Str("ip", c.RealIP()).
				Msg("API")
			return nil
		},
	})
}

// Recover はパニックを 500 応答に変換します。
func Recover() echo.MiddlewareFunc {
	return echomw.Recover()
}
