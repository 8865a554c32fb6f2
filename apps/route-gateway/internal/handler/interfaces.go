// Package handler はHTTPリクエストハンドラーを提供する。
package handler

import (
	"context"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/migration"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/usecase"
)

// TourneeService はルート取得ユースケース。
type TourneeService interface {
	GetTournee(ctx context.Context, req usecase.Request) (*usecase.Response, error)
}

// MigrationControl は移行状態の参照と運用操作。
type MigrationControl interface {
	Snapshot() migration.Snapshot
	History(ctx context.Context, limit int) ([]migration.Change, error)
	ChangeStrategy(ctx context.Context, to migration.Strategy, reason string) error
	Rollback(ctx context.Context, reason string) error
	SetAutoProgression(enabled bool)
}

// ManifestEvictor は日付指定のキャッシュ削除。
type ManifestEvictor interface {
	Delete(ctx context.Context, societe, driver, date string) error
}

// DriverInvalidator はドライバー単位のキャッシュ無効化。
type DriverInvalidator interface {
	InvalidateDriver(ctx context.Context, societe, driver string) (int, error)
}

// Pinger は依存先の疎通確認。
type Pinger interface {
	Ping(ctx context.Context) error
}
