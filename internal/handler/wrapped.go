package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"polymarket-wrapped/internal/service"
)

type WrappedHandler struct {
	Wrapped *service.WrappedService
	Logger  *zap.Logger
}

func (h *WrappedHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/wrapped/:address", h.get)
}

// @Summary Wrapped trading report for an address
// @Tags wrapped
// @Param address path string true "Account address (0x...)"
// @Success 200 {object} wrapped.Report
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /api/v1/wrapped/{address} [get]
func (h *WrappedHandler) get(c *gin.Context) {
	if h.Wrapped == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	address := c.Param("address")
	report, err := h.Wrapped.Generate(c.Request.Context(), address)
	if err != nil {
		h.respondError(c, address, err)
		return
	}
	Ok(c, report, nil)
}

func (h *WrappedHandler) respondError(c *gin.Context, address string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAddress):
		Error(c, http.StatusBadRequest, "invalid address", nil)
	case errors.Is(err, service.ErrNoTradingData):
		Error(c, http.StatusNotFound, "no trading data found", nil)
	default:
		if h.Logger != nil {
			h.Logger.Error("wrapped report failed",
				zap.String("address", address), zap.Error(err))
		}
		Error(c, http.StatusBadGateway, "failed to fetch trading data", nil)
	}
}
