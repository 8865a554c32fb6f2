// Package store はValkeyへのデータアクセスを提供する。
package store

import (
	"context"
	"fmt"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/config"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/apperr"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// ValkeyClient はValkeyクライアントをラップする。
type ValkeyClient struct {
	client *redis.Client
}

// NewValkeyClient は新しいValkeyClientを生成する。
func NewValkeyClient(cfg *config.Config) (*ValkeyClient, error) {
	opts := valkey.DefaultOptions().
		WithAddr(cfg.ValkeyAddr()).
		WithPassword(cfg.RedisPass).
		WithDB(cfg.RedisDB).
		WithTimeouts(config.ValkeyConnectTimeout, config.ValkeyCommandTimeout, config.ValkeyCommandTimeout).
		WithPool(config.ValkeyPoolSize, 2).
		WithRetries(config.ValkeyMaxRetries, config.ValkeyMinRetryBackoff, config.ValkeyMaxRetryBackoff)

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValkeyConnection, err)
	}
	return &ValkeyClient{client: client}, nil
}

// Close は接続を閉じる。
func (v *ValkeyClient) Close() error {
	return v.client.Close()
}

// Ping は疎通確認を行う。
func (v *ValkeyClient) Ping(ctx context.Context) error {
	if err := v.client.Ping(ctx).Err(); err != nil {
		return wrapErr("PING", "", err)
	}
	return nil
}

// Client は内部のredis.Clientを返す。
func (v *ValkeyClient) Client() *redis.Client {
	return v.client
}

// wrapErr はValkeyエラーを操作名・キー付きのValkeyErrorに変換する。
// 接続系はErrValkeyConnection、それ以外はErrValkeyCommandとしてラップする。
func wrapErr(op, key string, err error) error {
	kind := apperr.ErrValkeyCommand
	if valkey.IsConnectionError(err) {
		kind = apperr.ErrValkeyConnection
	}
	return apperr.NewValkeyError(op, key, kind, err)
}
