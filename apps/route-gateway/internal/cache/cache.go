package cache

import (
	"math/rand/v2"
	"time"
)

// Options はキャッシュ全体の設定。
type Options struct {
	ManifestTTL time.Duration
	Spread      time.Duration
	Floor       time.Duration
	Camouflage  bool
}

// Cache はマニフェスト・トークンキャッシュ、ダミー生成、無効化をまとめたもの。
type Cache struct {
	Manifests *ManifestCache
	Tokens    *TokenCache
	Decoys    *Decoys
	*Invalidator
}

// New はStore上にキャッシュ一式を構築する。rndがnilの場合はグローバル乱数源を使う。
func New(s Store, opts Options, rnd *rand.Rand) *Cache {
	policy := NewTTLPolicy(opts.ManifestTTL, opts.Spread, opts.Floor, opts.Camouflage, rnd)
	return &Cache{
		Manifests:   NewManifestCache(s, policy),
		Tokens:      NewTokenCache(s),
		Decoys:      NewDecoys(s, policy, nil),
		Invalidator: NewInvalidator(s),
	}
}
