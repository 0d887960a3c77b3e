package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"polymarket-wrapped/internal/service"
	"polymarket-wrapped/internal/wrapped"
)

type stubSource struct {
	trades []wrapped.Trade
	err    error
}

func (s *stubSource) ListTrades(_ context.Context, _ string, _ int) ([]wrapped.Trade, error) {
	return s.trades, s.err
}

func (s *stubSource) ListPositions(_ context.Context, _ string) ([]wrapped.Position, error) {
	return nil, nil
}

func newTestRouter(src *stubSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &WrappedHandler{Wrapped: &service.WrappedService{Source: src, Year: 2025}}
	h.Register(r)
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

const handlerTestAddress = "0x1234567890abcdef1234567890abcdef12345678"

func TestWrappedHandler_InvalidAddress(t *testing.T) {
	r := newTestRouter(&stubSource{})
	w := doGet(t, r, "/api/v1/wrapped/not-an-address")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestWrappedHandler_NoTradingData(t *testing.T) {
	r := newTestRouter(&stubSource{})
	w := doGet(t, r, "/api/v1/wrapped/"+handlerTestAddress)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestWrappedHandler_UpstreamFailure(t *testing.T) {
	r := newTestRouter(&stubSource{err: errors.New("provider down")})
	w := doGet(t, r, "/api/v1/wrapped/"+handlerTestAddress)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}

func TestWrappedHandler_Success(t *testing.T) {
	src := &stubSource{trades: []wrapped.Trade{
		{ID: "t1", Market: "m1", MarketTitle: "Market One", Side: wrapped.SideBuy,
			Outcome: "Yes", Price: 0.5, Size: 10, Timestamp: 1000},
	}}
	r := newTestRouter(src)
	w := doGet(t, r, "/api/v1/wrapped/"+handlerTestAddress)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Code int            `json:"code"`
		Data wrapped.Report `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != 0 {
		t.Fatalf("envelope code = %d", resp.Code)
	}
	if resp.Data.Address != handlerTestAddress || resp.Data.Year != 2025 {
		t.Fatalf("report = %+v", resp.Data)
	}
	if resp.Data.Stats.TotalTrades != 1 {
		t.Fatalf("totalTrades = %d", resp.Data.Stats.TotalTrades)
	}
}
