package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/carrier"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/integration"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/usecase"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/apperr"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/httputil"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
	"github.com/gin-gonic/gin"
)

// TourneeHandler はルート取得APIのハンドラー。
type TourneeHandler struct {
	uc     TourneeService
	fields *logging.CommonFields
}

// NewTourneeHandler は新しいTourneeHandlerを生成する。
func NewTourneeHandler(uc TourneeService, fields *logging.CommonFields) *TourneeHandler {
	if fields == nil {
		fields = logging.NewCommonFields(nil)
	}
	return &TourneeHandler{uc: uc, fields: fields}
}

// HandleTournee はPOST /api/v1/tournee のハンドラー。
// 失敗時もユースケースの結果（ストラテジー・メッセージ）を本文に含める。
func (h *TourneeHandler) HandleTournee(c *gin.Context) {
	traceID := c.GetString(httputil.TraceIDKey)

	var req usecase.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid request body",
			"trace_id", traceID,
			logging.WithEventID("API_ERR"),
			logging.WithError(err),
		)
		httputil.WriteError(c, httputil.BadRequest("Invalid request body"))
		return
	}

	resp, err := h.uc.GetTournee(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidRequest) || errors.Is(err, apperr.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, resp)
			return
		}
		status := statusFor(err)
		slog.Warn("tournee request failed",
			"trace_id", traceID,
			logging.WithEventID("API_ERR"),
			slog.String(logging.FieldSociete, req.Societe),
			h.fields.WithUsername(req.Username),
			logging.WithHTTPStatus(status),
			logging.WithError(err),
		)
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// statusFor はユースケースの失敗種別をHTTPステータスに対応付ける。
func statusFor(err error) int {
	var nre *integration.NotRegisteredError
	var rfe *carrier.RequestFailedError
	var ce *carrier.ConnectionError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, apperr.ErrAuthorizationDenied):
		return http.StatusUnauthorized
	case errors.Is(err, carrier.ErrCircuitOpen):
		return http.StatusServiceUnavailable
	case errors.As(err, &nre):
		return http.StatusNotImplemented
	case errors.Is(err, apperr.ErrMalformedManifest),
		errors.As(err, &rfe),
		errors.As(err, &ce),
		errors.Is(err, carrier.ErrInvalidResponse):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
