package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/migration"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/apperr"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/httputil"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
	"github.com/gin-gonic/gin"
)

// defaultHistoryLimit は状態取得時に返す履歴件数の既定値。
const defaultHistoryLimit = 20

// MigrationHandler は移行状態の参照・手動操作APIのハンドラー。
type MigrationHandler struct {
	ctrl MigrationControl
}

// NewMigrationHandler は新しいMigrationHandlerを生成する。
func NewMigrationHandler(ctrl MigrationControl) *MigrationHandler {
	return &MigrationHandler{ctrl: ctrl}
}

// StatusResponse は移行状態と変更履歴。
type StatusResponse struct {
	migration.Snapshot
	History []migration.Change `json:"history"`
}

// ChangeRequest はストラテジー変更リクエスト。
type ChangeRequest struct {
	Strategy string `json:"strategy" binding:"required"`
	Reason   string `json:"reason"`
}

// RollbackRequest は巻き戻しリクエスト。
type RollbackRequest struct {
	Reason string `json:"reason"`
}

// AutoRequest は自動進行の切り替えリクエスト。
type AutoRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// HandleStatus はGET /api/v1/migration/status のハンドラー。
func (h *MigrationHandler) HandleStatus(c *gin.Context) {
	limit := defaultHistoryLimit
	if q := c.Query("history"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 || n > migration.HistoryLimit {
			httputil.WriteError(c, httputil.BadRequest("history must be between 0 and 100"))
			return
		}
		limit = n
	}

	resp := StatusResponse{Snapshot: h.ctrl.Snapshot(), History: []migration.Change{}}
	if limit > 0 {
		history, err := h.ctrl.History(c.Request.Context(), limit)
		if err != nil {
			slog.Warn("migration history unavailable",
				"trace_id", c.GetString(httputil.TraceIDKey),
				logging.WithEventID("API_ERR"),
				logging.WithError(err),
			)
		} else if history != nil {
			resp.History = history
		}
	}
	c.JSON(http.StatusOK, resp)
}

// HandleChangeStrategy はPOST /api/v1/migration/strategy のハンドラー。
func (h *MigrationHandler) HandleChangeStrategy(c *gin.Context) {
	var req ChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteError(c, httputil.BadRequest("strategy is required"))
		return
	}
	to, err := migration.ParseStrategy(req.Strategy)
	if err != nil {
		httputil.WriteError(c, httputil.BadRequest(err.Error()))
		return
	}
	if req.Reason == "" {
		req.Reason = "manual"
	}
	if err := h.ctrl.ChangeStrategy(c.Request.Context(), to, req.Reason); err != nil {
		h.writeChangeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.ctrl.Snapshot())
}

// HandleRollback はPOST /api/v1/migration/rollback のハンドラー。
func (h *MigrationHandler) HandleRollback(c *gin.Context) {
	var req RollbackRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.WriteError(c, httputil.BadRequest("Invalid request body"))
			return
		}
	}
	if req.Reason == "" {
		req.Reason = "manual rollback"
	}
	if err := h.ctrl.Rollback(c.Request.Context(), req.Reason); err != nil {
		h.writeChangeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.ctrl.Snapshot())
}

// HandleAuto はPUT /api/v1/migration/auto のハンドラー。
func (h *MigrationHandler) HandleAuto(c *gin.Context) {
	var req AutoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteError(c, httputil.BadRequest("enabled is required"))
		return
	}
	h.ctrl.SetAutoProgression(*req.Enabled)
	c.JSON(http.StatusOK, h.ctrl.Snapshot())
}

func (h *MigrationHandler) writeChangeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrUnknownStrategy):
		httputil.WriteError(c, httputil.BadRequest(err.Error()))
	case errors.Is(err, apperr.ErrNonAdjacentTransition), errors.Is(err, migration.ErrNoNeighbor):
		httputil.WriteError(c, httputil.Conflict(err.Error()))
	case errors.Is(err, apperr.ErrValkeyConnection), errors.Is(err, apperr.ErrValkeyCommand):
		slog.Error("migration state persist failed",
			"trace_id", c.GetString(httputil.TraceIDKey),
			logging.WithEventID("API_ERR"),
			logging.WithError(err),
		)
		httputil.WriteError(c, httputil.ServiceUnavailable("Migration state store unavailable"))
	default:
		slog.Error("unexpected migration error",
			"trace_id", c.GetString(httputil.TraceIDKey),
			logging.WithEventID("API_ERR"),
			logging.WithError(err),
		)
		httputil.WriteError(c, httputil.InternalServerError("An unexpected error occurred"))
	}
}
