package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/cache"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/metrics"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/migration"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
)

// DecoyPopulator はダミーエントリを書き込む。
type DecoyPopulator interface {
	Populate(ctx context.Context, n int) (int, error)
}

// Cleaner は期限切れエントリとインデックスを掃除する。
type Cleaner interface {
	CleanupExpired(ctx context.Context) (cache.CleanupStats, error)
}

// Syncer は共有ストアの移行状態をローカルへ反映する。
type Syncer interface {
	Sync(ctx context.Context) (bool, error)
}

// SnapshotSource は移行状態のスナップショットを返す。
type SnapshotSource interface {
	Snapshot() migration.Snapshot
}

// DecoyTask はダミーエントリ生成タスクを返す。
func DecoyTask(d DecoyPopulator, count int, interval time.Duration) Task {
	return Task{
		Name:     "cache_decoys",
		Interval: interval,
		Run: func(ctx context.Context) error {
			n, err := d.Populate(ctx, count)
			if err != nil {
				return err
			}
			if n > 0 {
				slog.Debug("ダミーエントリ生成",
					logging.WithEventID("CACHE_DECOYS"),
					slog.Int("count", n),
				)
			}
			return nil
		},
	}
}

// CleanupTask はキャッシュ掃除タスクを返す。
func CleanupTask(c Cleaner, interval time.Duration) Task {
	return Task{
		Name:     "cache_cleanup",
		Interval: interval,
		Run: func(ctx context.Context) error {
			stats, err := c.CleanupExpired(ctx)
			if err != nil {
				return err
			}
			slog.Info("キャッシュ掃除完了",
				logging.WithEventID("CACHE_CLEANUP"),
				slog.Int("indexes", stats.Indexes),
				slog.Int("dangling_keys", stats.DanglingKeys),
				slog.Int("expired_tokens", stats.ExpiredTokens),
				slog.Int("empty_indexes", stats.EmptyIndexes),
			)
			return nil
		},
	}
}

// SyncTask は移行状態同期タスクを返す。
func SyncTask(s Syncer, interval time.Duration) Task {
	return Task{
		Name:     "migration_sync",
		Interval: interval,
		Run: func(ctx context.Context) error {
			_, err := s.Sync(ctx)
			return err
		},
	}
}

// ReportTask はメトリクス送信タスクを返す。reporterがnilの場合は無効なTaskを返す。
func ReportTask(src SnapshotSource, reporter metrics.Reporter, interval time.Duration) Task {
	if reporter == nil {
		return Task{Name: "metrics_report"}
	}
	return Task{
		Name:     "metrics_report",
		Interval: interval,
		Run: func(ctx context.Context) error {
			return reporter.Report(ctx, src.Snapshot())
		},
	}
}
