package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/store"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
)

// ManifestCache はデコード済みマニフェストのキャッシュ。
// ヒットは副作用を持ち、アクセス情報を更新して残りTTLで書き戻す。
type ManifestCache struct {
	store  Store
	policy *TTLPolicy
	now    func() time.Time
}

// NewManifestCache は新しいManifestCacheを生成する。
func NewManifestCache(s Store, policy *TTLPolicy) *ManifestCache {
	return &ManifestCache{store: s, policy: policy, now: time.Now}
}

// Get はマニフェストを取得する。
// 論理有効期限切れ・破損・旧フォーマットのエントリは削除してミスとして扱う。
// アクセス情報の更新はキー単位で直列化される。
func (c *ManifestCache) Get(ctx context.Context, societe, driver, date string) (*model.CachedManifest, bool, error) {
	key := store.TourneeKey(societe, driver, date)
	var hit *model.CachedManifest

	err := c.store.Update(ctx, key, func(raw string, found bool) (string, time.Duration, error) {
		hit = nil
		if !found {
			return "", 0, store.ErrSkipUpdate
		}

		now := c.now()
		var m model.CachedManifest
		if err := json.Unmarshal([]byte(raw), &m); err != nil || m.FormatVersion != model.ManifestFormatVersion {
			slog.Warn("不正なキャッシュエントリを破棄",
				logging.WithEventID("CACHE_ENTRY_DISCARDED"),
				slog.String("key", key),
			)
			return "", 0, nil
		}
		if m.IsExpiredAt(now) {
			slog.Debug("期限切れキャッシュエントリを削除",
				logging.WithEventID("CACHE_EXPIRED"),
				slog.String("key", key),
			)
			return "", 0, nil
		}

		m.Touch(now)
		data, err := json.Marshal(&m)
		if err != nil {
			return "", 0, fmt.Errorf("marshal manifest: %w", err)
		}
		hit = &m
		return string(data), m.ExpiresAt.Sub(now), nil
	})
	if err != nil {
		return nil, false, err
	}
	return hit, hit != nil, nil
}

// Set はマニフェストを保存し、ドライバー索引に登録する。
// ExpiresAtとFormatVersionはここで確定させる。
func (c *ManifestCache) Set(ctx context.Context, m *model.CachedManifest) error {
	now := c.now()
	ttl := c.policy.Next()
	m.ExpiresAt = now.Add(ttl)
	m.FormatVersion = model.ManifestFormatVersion
	if m.LastAccess.IsZero() {
		m.LastAccess = now
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	key := store.TourneeKey(m.Societe, m.Driver, m.Date)
	if err := c.store.Set(ctx, key, string(data), ttl); err != nil {
		return err
	}
	return indexKey(ctx, c.store, m.Societe, m.Driver, key)
}

// Delete は指定日のマニフェストを削除する。
func (c *ManifestCache) Delete(ctx context.Context, societe, driver, date string) error {
	key := store.TourneeKey(societe, driver, date)
	if err := c.store.Delete(ctx, key); err != nil {
		return err
	}
	return c.store.RemoveFromIndex(ctx, store.DriverIndexKey(societe, driver), key)
}
