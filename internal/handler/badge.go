package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"polymarket-wrapped/internal/service"
	"polymarket-wrapped/internal/wrapped"
)

type BadgeHandler struct {
	Badges  *service.BadgeService
	Wrapped *service.WrappedService
	Logger  *zap.Logger
}

func (h *BadgeHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/badge")
	g.GET("/:address", h.preview)
	g.POST("/:address/publish", h.publish)
	g.GET("/:address/records", h.records)
}

type badgePreviewResponse struct {
	Metadata  service.BadgeMetadata `json:"metadata"`
	ShareText string                `json:"shareText"`
}

type badgePublishResponse struct {
	TokenURI    string `json:"tokenUri"`
	MetadataURL string `json:"metadataUrl"`
	RecordID    uint64 `json:"recordId"`
}

// @Summary Badge metadata preview for an address
// @Tags badge
// @Param address path string true "Account address (0x...)"
// @Success 200 {object} badgePreviewResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/v1/badge/{address} [get]
func (h *BadgeHandler) preview(c *gin.Context) {
	if h.Badges == nil || h.Wrapped == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	report, ok := h.loadReport(c)
	if !ok {
		return
	}
	Ok(c, badgePreviewResponse{
		Metadata:  h.Badges.BuildMetadata(report),
		ShareText: h.Badges.ShareText(report),
	}, nil)
}

// @Summary Pin badge metadata and record the mint intent
// @Tags badge
// @Param address path string true "Account address (0x...)"
// @Success 200 {object} badgePublishResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/v1/badge/{address}/publish [post]
func (h *BadgeHandler) publish(c *gin.Context) {
	if h.Badges == nil || h.Wrapped == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	report, ok := h.loadReport(c)
	if !ok {
		return
	}
	record, err := h.Badges.Publish(c.Request.Context(), report)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("badge publish failed",
				zap.String("address", report.Address), zap.Error(err))
		}
		Error(c, http.StatusBadGateway, "failed to publish badge metadata", nil)
		return
	}
	Ok(c, badgePublishResponse{
		TokenURI:    record.TokenURI,
		MetadataURL: h.Badges.MetadataURL(record.TokenURI),
		RecordID:    record.ID,
	}, nil)
}

// @Summary Earlier badge publish receipts for an address
// @Tags badge
// @Param address path string true "Account address (0x...)"
// @Success 200 {array} models.MintRecord
// @Failure 400 {object} map[string]any
// @Router /api/v1/badge/{address}/records [get]
func (h *BadgeHandler) records(c *gin.Context) {
	if h.Badges == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	items, err := h.Badges.Records(c.Request.Context(), c.Param("address"), 50)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAddress) {
			Error(c, http.StatusBadRequest, "invalid address", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.Error("badge record list failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to list badge records", nil)
		return
	}
	Ok(c, items, nil)
}

func (h *BadgeHandler) loadReport(c *gin.Context) (*wrapped.Report, bool) {
	address := c.Param("address")
	r, err := h.Wrapped.Generate(c.Request.Context(), address)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAddress):
			Error(c, http.StatusBadRequest, "invalid address", nil)
		case errors.Is(err, service.ErrNoTradingData):
			Error(c, http.StatusNotFound, "no trading data found", nil)
		default:
			if h.Logger != nil {
				h.Logger.Error("wrapped report for badge failed",
					zap.String("address", address), zap.Error(err))
			}
			Error(c, http.StatusBadGateway, "failed to fetch trading data", nil)
		}
		return nil, false
	}
	return r, true
}
