// Package http は社員ディレクトリの HTTP API を組み立てます。
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ogurasousui/employee-directory/internal/adapters/http/handler"
	"github.com/ogurasousui/employee-directory/internal/adapters/http/middleware"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

// NewRouter はミドルウェアとルートを登録した echo インスタンスを返します。
// pinger が nil の場合、ヘルスチェックは常に正常を返します。
func NewRouter(svc employee.UseCase, pinger handler.Pinger, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(logger)

	e.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.RequestLogger(logger, handler.StatusOf),
		middleware.Recover(),
	)

	e.GET("/healthz", handler.NewHealthHandler(pinger).Check)
	handler.NewEmployeeHandler(svc).Register(e.Group("/employees"))

	return e
}
