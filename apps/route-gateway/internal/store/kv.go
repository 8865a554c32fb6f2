package store

import (
	"context"
	"errors"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/apperr"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// updateMaxAttempts はUpdateの楽観ロック競合時の最大試行回数。
const updateMaxAttempts = 32

// ErrSkipUpdate はUpdateFuncが書き込み不要を示すために返す。
var ErrSkipUpdate = errors.New("skip update")

// UpdateFunc はWATCH中の現在値を受け取り、書き戻す値とTTLを返す。
// ttlが0以下の場合はキーを削除する。
type UpdateFunc func(current string, found bool) (next string, ttl time.Duration, err error)

// KVStore は文字列キー・値のTTL付きストアと集合索引を提供する。
type KVStore struct {
	vc *ValkeyClient
}

// NewKVStore は新しいKVStoreを生成する。
func NewKVStore(vc *ValkeyClient) *KVStore {
	return &KVStore{vc: vc}
}

// Get は値を取得する。未存在の場合はfoundがfalseになる。
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.vc.Client().Get(ctx, key).Result()
	if err != nil {
		if valkey.IsKeyNotFound(err) {
			return "", false, nil
		}
		return "", false, wrapErr("GET", key, err)
	}
	return val, true, nil
}

// Set はTTL付きで値を保存する。
func (s *KVStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.vc.Client().Set(ctx, key, value, ttl).Err(); err != nil {
		return wrapErr("SET", key, err)
	}
	return nil
}

// Delete はキーを削除する。
func (s *KVStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.vc.Client().Del(ctx, keys...).Err(); err != nil {
		return wrapErr("DEL", keys[0], err)
	}
	return nil
}

// Exists はキーの存在を確認する。
func (s *KVStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.vc.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, wrapErr("EXISTS", key, err)
	}
	return n > 0, nil
}

// Update はWATCH/MULTIでキーを読み替える。
// 他クライアントとの競合時はfnを再実行する。fnのエラーはそのまま返す（ErrSkipUpdateはnil）。
func (s *KVStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	var fnErr error
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Result()
		found := true
		if valkey.IsKeyNotFound(err) {
			found = false
		} else if err != nil {
			return err
		}

		next, ttl, err := fn(current, found)
		if err != nil {
			fnErr = err
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if ttl <= 0 {
				pipe.Del(ctx, key)
			} else {
				pipe.Set(ctx, key, next, ttl)
			}
			return nil
		})
		return err
	}

	for range updateMaxAttempts {
		fnErr = nil
		err := s.vc.Client().Watch(ctx, txf, key)
		switch {
		case err == nil:
			return nil
		case fnErr != nil:
			if errors.Is(fnErr, ErrSkipUpdate) {
				return nil
			}
			return fnErr
		case errors.Is(err, redis.TxFailedErr):
			continue
		default:
			return wrapErr("WATCH", key, err)
		}
	}
	return apperr.NewValkeyError("WATCH", key, apperr.ErrValkeyCommand, redis.TxFailedErr)
}

// AddToIndex は索引集合にメンバーを追加し、索引自体のTTLを延長する。
func (s *KVStore) AddToIndex(ctx context.Context, index string, ttl time.Duration, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]any, len(members))
	for i, m := range members {
		args[i] = m
	}
	pipe := s.vc.Client().Pipeline()
	pipe.SAdd(ctx, index, args...)
	if ttl > 0 {
		pipe.Expire(ctx, index, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return wrapErr("SADD", index, err)
	}
	return nil
}

// IndexMembers は索引集合のメンバーを返す。
func (s *KVStore) IndexMembers(ctx context.Context, index string) ([]string, error) {
	members, err := s.vc.Client().SMembers(ctx, index).Result()
	if err != nil {
		return nil, wrapErr("SMEMBERS", index, err)
	}
	return members, nil
}

// RemoveFromIndex は索引集合からメンバーを削除する。
func (s *KVStore) RemoveFromIndex(ctx context.Context, index string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]any, len(members))
	for i, m := range members {
		args[i] = m
	}
	if err := s.vc.Client().SRem(ctx, index, args...).Err(); err != nil {
		return wrapErr("SREM", index, err)
	}
	return nil
}
