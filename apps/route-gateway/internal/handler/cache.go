package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/httputil"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
	"github.com/gin-gonic/gin"
)

// CacheHandler はキャッシュ無効化APIのハンドラー。
type CacheHandler struct {
	manifests ManifestEvictor
	drivers   DriverInvalidator
	fields    *logging.CommonFields
}

// NewCacheHandler は新しいCacheHandlerを生成する。
func NewCacheHandler(manifests ManifestEvictor, drivers DriverInvalidator, fields *logging.CommonFields) *CacheHandler {
	if fields == nil {
		fields = logging.NewCommonFields(nil)
	}
	return &CacheHandler{manifests: manifests, drivers: drivers, fields: fields}
}

// HandleDeleteManifest はDELETE /api/v1/cache/tournee/:societe/:driver/:date のハンドラー。
func (h *CacheHandler) HandleDeleteManifest(c *gin.Context) {
	societe, driver, date := c.Param("societe"), c.Param("driver"), c.Param("date")
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		httputil.WriteError(c, httputil.BadRequest("date must be YYYY-MM-DD"))
		return
	}
	if err := h.manifests.Delete(c.Request.Context(), societe, driver, date); err != nil {
		h.writeStoreError(c, err)
		return
	}
	slog.Info("manifest cache evicted",
		"trace_id", c.GetString(httputil.TraceIDKey),
		logging.WithEventID("CACHE_EVICT"),
		slog.String(logging.FieldSociete, societe),
		h.fields.WithUsername(driver),
		slog.String("date", date),
	)
	c.Status(http.StatusNoContent)
}

// HandleInvalidateDriver はDELETE /api/v1/cache/tournee/:societe/:driver のハンドラー。
func (h *CacheHandler) HandleInvalidateDriver(c *gin.Context) {
	societe, driver := c.Param("societe"), c.Param("driver")
	n, err := h.drivers.InvalidateDriver(c.Request.Context(), societe, driver)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}
	slog.Info("driver cache invalidated",
		"trace_id", c.GetString(httputil.TraceIDKey),
		logging.WithEventID("CACHE_INVALIDATE"),
		slog.String(logging.FieldSociete, societe),
		h.fields.WithUsername(driver),
		slog.Int("deleted", n),
	)
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (h *CacheHandler) writeStoreError(c *gin.Context, err error) {
	slog.Error("cache operation failed",
		"trace_id", c.GetString(httputil.TraceIDKey),
		logging.WithEventID("API_ERR"),
		logging.WithError(err),
	)
	httputil.WriteError(c, httputil.ServiceUnavailable("Cache store unavailable"))
}
