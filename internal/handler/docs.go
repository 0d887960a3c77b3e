package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, `# Polymarket Wrapped Service

Computes a yearly "wrapped" trading summary for one account address:
volume, realized PnL, win rate, streaks, category and monthly rollups,
and a trading persona.

## Routes

- GET /healthz
- GET /readyz
- GET /swagger/index.html
- GET /api/v1/wrapped/:address
- POST /api/v1/pincode            {"address": "0x..."}
- GET /api/v1/pincode/:code
- GET /api/v1/badge/:address
- POST /api/v1/badge/:address/publish
- GET /api/v1/badge/:address/records

## Notes

- Addresses must match ^0x[a-fA-F0-9]{40}$ (400 otherwise).
- Accounts without trades return 404; upstream failures return 502.
- Pin codes are uppercase, six characters, and expire after 30 days
  by default.
- Publishing a badge pins the ERC-721 metadata document to IPFS and
  records the token URI; the mint transaction itself happens client
  side.
`)
	})
}
