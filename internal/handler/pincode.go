package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"polymarket-wrapped/internal/service"
)

type PinCodeHandler struct {
	PinCodes *service.PinCodeService
	Wrapped  *service.WrappedService
	Logger   *zap.Logger
}

func (h *PinCodeHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/pincode")
	g.POST("", h.create)
	g.GET("/:code", h.resolve)
}

type createPinCodeRequest struct {
	Address string `json:"address"`
}

type createPinCodeResponse struct {
	Code      string `json:"code"`
	Address   string `json:"address"`
	ExpiresAt int64  `json:"expiresAt"`
}

// @Summary Issue a share pin code for an address
// @Tags pincode
// @Accept json
// @Param body body createPinCodeRequest true "Account address"
// @Success 200 {object} createPinCodeResponse
// @Failure 400 {object} map[string]any
// @Router /api/v1/pincode [post]
func (h *PinCodeHandler) create(c *gin.Context) {
	if h.PinCodes == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req createPinCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	pin, err := h.PinCodes.Generate(c.Request.Context(), req.Address)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAddress) {
			Error(c, http.StatusBadRequest, "invalid address", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.Error("pin code generation failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to generate pin code", nil)
		return
	}
	Ok(c, createPinCodeResponse{
		Code:      pin.Code,
		Address:   pin.Address,
		ExpiresAt: pin.ExpiresAt.UnixMilli(),
	}, nil)
}

// @Summary Wrapped report looked up by pin code
// @Tags pincode
// @Param code path string true "Share code"
// @Success 200 {object} wrapped.Report
// @Failure 404 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /api/v1/pincode/{code} [get]
func (h *PinCodeHandler) resolve(c *gin.Context) {
	if h.PinCodes == nil || h.Wrapped == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	address, err := h.PinCodes.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrPinCodeNotFound) {
			Error(c, http.StatusNotFound, "invalid or expired pin code", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.Error("pin code lookup failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to resolve pin code", nil)
		return
	}
	report, err := h.Wrapped.Generate(c.Request.Context(), address)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoTradingData):
			Error(c, http.StatusNotFound, "no trading data found", nil)
		default:
			if h.Logger != nil {
				h.Logger.Error("wrapped report via pin code failed",
					zap.String("address", address), zap.Error(err))
			}
			Error(c, http.StatusBadGateway, "failed to fetch trading data", nil)
		}
		return
	}
	Ok(c, report, nil)
}
