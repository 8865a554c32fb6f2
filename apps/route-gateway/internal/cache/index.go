package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/store"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
)

// IndexTTL はドライバー索引の保持期間。登録の度に延長する。
const IndexTTL = 48 * time.Hour

// indexKey はキーをドライバー索引に登録し、索引自体をドライバー一覧に登録する。
func indexKey(ctx context.Context, s Index, societe, driver, key string) error {
	idx := store.DriverIndexKey(societe, driver)
	if err := s.AddToIndex(ctx, idx, IndexTTL, key); err != nil {
		return err
	}
	return s.AddToIndex(ctx, store.KeyDriverIndexSet, 0, idx)
}

// CleanupStats はCleanupExpiredの処理結果。
type CleanupStats struct {
	Indexes       int // 走査した索引数
	DanglingKeys  int // 索引から除去した消失済みキー数
	ExpiredTokens int // 削除した論理期限切れトークン数
	EmptyIndexes  int // ドライバー一覧から除去した空索引数
}

// Invalidator はドライバー単位の無効化と期限切れエントリの掃除を行う。
type Invalidator struct {
	store Store
	now   func() time.Time
}

// NewInvalidator は新しいInvalidatorを生成する。
func NewInvalidator(s Store) *Invalidator {
	return &Invalidator{store: s, now: time.Now}
}

// InvalidateDriver はドライバーの全キャッシュエントリ（マニフェスト・トークン）を削除する。
// 削除したキー数を返す。
func (iv *Invalidator) InvalidateDriver(ctx context.Context, societe, driver string) (int, error) {
	idx := store.DriverIndexKey(societe, driver)
	keys, err := iv.store.IndexMembers(ctx, idx)
	if err != nil {
		return 0, err
	}
	if err := iv.store.Delete(ctx, append(keys, idx)...); err != nil {
		return 0, err
	}
	if err := iv.store.RemoveFromIndex(ctx, store.KeyDriverIndexSet, idx); err != nil {
		return 0, err
	}
	slog.Info("ドライバーのキャッシュを無効化",
		logging.WithEventID("CACHE_DRIVER_INVALIDATED"),
		slog.String(logging.FieldSociete, societe),
		slog.Int("keys", len(keys)),
	)
	return len(keys), nil
}

// CleanupExpired は索引に残った消失済みキーと論理期限切れトークンを掃除する。
func (iv *Invalidator) CleanupExpired(ctx context.Context) (CleanupStats, error) {
	var stats CleanupStats
	indexes, err := iv.store.IndexMembers(ctx, store.KeyDriverIndexSet)
	if err != nil {
		return stats, err
	}

	now := iv.now()
	for _, idx := range indexes {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Indexes++

		keys, err := iv.store.IndexMembers(ctx, idx)
		if err != nil {
			return stats, err
		}
		var remove []string
		for _, key := range keys {
			gone, expired, err := iv.inspect(ctx, key, now)
			if err != nil {
				return stats, err
			}
			switch {
			case gone:
				stats.DanglingKeys++
				remove = append(remove, key)
			case expired:
				if err := iv.store.Delete(ctx, key); err != nil {
					return stats, err
				}
				stats.ExpiredTokens++
				remove = append(remove, key)
			}
		}
		if err := iv.store.RemoveFromIndex(ctx, idx, remove...); err != nil {
			return stats, err
		}
		if len(remove) == len(keys) {
			if err := iv.store.Delete(ctx, idx); err != nil {
				return stats, err
			}
			if err := iv.store.RemoveFromIndex(ctx, store.KeyDriverIndexSet, idx); err != nil {
				return stats, err
			}
			stats.EmptyIndexes++
		}
	}

	slog.Debug("キャッシュ掃除完了",
		logging.WithEventID("CACHE_CLEANUP"),
		slog.Int("indexes", stats.Indexes),
		slog.Int("dangling", stats.DanglingKeys),
		slog.Int("expired_tokens", stats.ExpiredTokens),
	)
	return stats, nil
}

// inspect はキーが消失済みか、トークンの場合は論理期限切れかを判定する。
func (iv *Invalidator) inspect(ctx context.Context, key string, now time.Time) (gone, expired bool, err error) {
	if !strings.HasPrefix(key, store.KeyPrefixToken) {
		ok, err := iv.store.Exists(ctx, key)
		return !ok, false, err
	}
	raw, found, err := iv.store.Get(ctx, key)
	if err != nil || !found {
		return !found, false, err
	}
	var t model.SessionToken
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return false, true, nil
	}
	return false, !t.ValidAt(now), nil
}
