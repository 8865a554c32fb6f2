package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status string `json:"status"`
	Valkey string `json:"valkey,omitempty"`
}

// HealthHandler はヘルスチェックのハンドラー。
type HealthHandler struct {
	valkey Pinger
}

// NewHealthHandler は新しいHealthHandlerを生成する。valkeyがnilの場合は疎通確認を省略する。
func NewHealthHandler(valkey Pinger) *HealthHandler {
	return &HealthHandler{valkey: valkey}
}

// HandleHealth はGET /health のハンドラー。
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	if h.valkey == nil {
		c.JSON(http.StatusOK, healthResponse{Status: "ok"})
		return
	}
	if err := h.valkey.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "degraded", Valkey: "unreachable"})
		return
	}
	c.JSON(http.StatusOK, healthResponse{Status: "ok", Valkey: "ok"})
}
