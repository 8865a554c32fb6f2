// Package usecase はルート取得のビジネスロジックを提供する。
package usecase

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces_test.go -package=usecase
//go:generate mockgen -destination=mock_integration_test.go -package=usecase github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/integration Integration

import (
	"context"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/integration"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/migration"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
)

// Router は移行制御のインターフェース。
type Router interface {
	Decide(fp migration.Fingerprint) migration.Assignment
	RecordOutcome(s migration.Strategy, concrete migration.Concrete, success bool, latency time.Duration)
	AutoProgression() bool
	ApplyEvaluation(ctx context.Context) (migration.Decision, bool, error)
}

// IntegrationProvider は連携方式の取得インターフェース。
type IntegrationProvider interface {
	Get(c migration.Concrete) (integration.Integration, error)
}

// ManifestStore はマニフェストキャッシュのインターフェース。
type ManifestStore interface {
	Get(ctx context.Context, societe, driver, date string) (*model.CachedManifest, bool, error)
	Set(ctx context.Context, m *model.CachedManifest) error
}

// TokenStore はトークンキャッシュのインターフェース。
type TokenStore interface {
	Get(ctx context.Context, societe, driver string) (*model.SessionToken, bool, error)
	Set(ctx context.Context, t *model.SessionToken) error
	Invalidate(ctx context.Context, societe, driver string) error
}
