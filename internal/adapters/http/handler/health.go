package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger はストレージの疎通確認を行います。
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler は GET /healthz を処理します。
type HealthHandler struct {
	pinger  Pinger
	timeout time.Duration
}

// NewHealthHandler は HealthHandler を生成します。pinger が nil の場合は常に正常を返します。
func NewHealthHandler(pinger Pinger) *HealthHandler {
	return &HealthHandler{pinger: pinger, timeout: 2 * time.Second}
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (h *HealthHandler) Check(c echo.Context) error {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		defer cancel()

		if err := h.pinger.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: "storage unreachable"})
		}
	}
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}
