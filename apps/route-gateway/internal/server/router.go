package server

import (
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/handler"
	"github.com/gin-gonic/gin"
)

// Handlers はルーティング対象のハンドラー一式。
type Handlers struct {
	Health    *handler.HealthHandler
	Tournee   *handler.TourneeHandler
	Migration *handler.MigrationHandler
	Cache     *handler.CacheHandler
}

// SetupRouter はルーティングを設定する。
func SetupRouter(engine *gin.Engine, h Handlers) {
	engine.GET("/health", h.Health.HandleHealth)

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/tournee", h.Tournee.HandleTournee)

		m := v1.Group("/migration")
		m.GET("/status", h.Migration.HandleStatus)
		m.POST("/strategy", h.Migration.HandleChangeStrategy)
		m.POST("/rollback", h.Migration.HandleRollback)
		m.PUT("/auto", h.Migration.HandleAuto)

		v1.DELETE("/cache/tournee/:societe/:driver", h.Cache.HandleInvalidateDriver)
		v1.DELETE("/cache/tournee/:societe/:driver/:date", h.Cache.HandleDeleteManifest)
	}
}
