// Package cache はマニフェスト・トークンのキャッシュとカモフラージュ機能を提供する。
package cache

import (
	"context"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/store"
)

// KV はTTL付きの文字列キー・値ストアを定義する。
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Update(ctx context.Context, key string, fn store.UpdateFunc) error
}

// Index はキーの集合索引を定義する。
type Index interface {
	AddToIndex(ctx context.Context, index string, ttl time.Duration, members ...string) error
	IndexMembers(ctx context.Context, index string) ([]string, error)
	RemoveFromIndex(ctx context.Context, index string, members ...string) error
}

// Store はKVと索引の両方を提供するバックエンド。
type Store interface {
	KV
	Index
}
