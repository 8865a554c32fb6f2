package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/store"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
)

// TokenCache はドライバー単位のセッショントークンキャッシュ。
// 保存TTLはトークンの残り有効時間とし、ジッターは適用しない。
type TokenCache struct {
	store Store
	now   func() time.Time
}

// NewTokenCache は新しいTokenCacheを生成する。
func NewTokenCache(s Store) *TokenCache {
	return &TokenCache{store: s, now: time.Now}
}

// Get はトークンを取得する。期限切れ・破損の場合は削除してミスとする。
func (c *TokenCache) Get(ctx context.Context, societe, driver string) (*model.SessionToken, bool, error) {
	key := store.TokenKey(societe, driver)
	raw, found, err := c.store.Get(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}

	var t model.SessionToken
	if err := json.Unmarshal([]byte(raw), &t); err != nil || !t.ValidAt(c.now()) {
		return nil, false, c.store.Delete(ctx, key)
	}
	return &t, true, nil
}

// Set はトークンを保存する。既に期限切れのトークンは保存しない。
func (c *TokenCache) Set(ctx context.Context, t *model.SessionToken) error {
	ttl := t.Remaining(c.now())
	if ttl <= 0 || t.Token == "" {
		return nil
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	key := store.TokenKey(t.Societe, t.Username)
	if err := c.store.Set(ctx, key, string(data), ttl); err != nil {
		return err
	}
	return indexKey(ctx, c.store, t.Societe, t.Username, key)
}

// Invalidate はトークンを破棄する。キャリアが拒否したトークンは再利用しない。
func (c *TokenCache) Invalidate(ctx context.Context, societe, driver string) error {
	key := store.TokenKey(societe, driver)
	if err := c.store.Delete(ctx, key); err != nil {
		return err
	}
	return c.store.RemoveFromIndex(ctx, store.DriverIndexKey(societe, driver), key)
}
