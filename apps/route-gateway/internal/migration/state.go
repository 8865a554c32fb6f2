package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/store"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/apperr"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/valkey"
)

// HistoryLimit は保持する変更履歴の最大件数。
const HistoryLimit = 100

// Change はストラテジー変更の履歴エントリ。
type Change struct {
	From    Strategy        `json:"from"`
	To      Strategy        `json:"to"`
	Reason  string          `json:"reason"`
	At      time.Time       `json:"at"`
	Metrics StrategyMetrics `json:"metrics"` // 変更時点の変更元ストラテジーの集計
}

// StateStore は複数インスタンス間で共有する移行状態を定義する。
type StateStore interface {
	LoadStrategy(ctx context.Context) (Strategy, bool, error)
	SaveStrategy(ctx context.Context, s Strategy, change Change) error
	History(ctx context.Context, limit int) ([]Change, error)
}

// ValkeyStateStore はValkey上の移行状態ストア。
type ValkeyStateStore struct {
	vc *store.ValkeyClient
}

// NewValkeyStateStore は新しいValkeyStateStoreを生成する。
func NewValkeyStateStore(vc *store.ValkeyClient) *ValkeyStateStore {
	return &ValkeyStateStore{vc: vc}
}

// LoadStrategy は永続化されたストラテジーを読み込む。未保存の場合はfalse。
func (s *ValkeyStateStore) LoadStrategy(ctx context.Context) (Strategy, bool, error) {
	name, err := s.vc.Client().Get(ctx, store.KeyMigrationStrategy).Result()
	if valkey.IsKeyNotFound(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", apperr.ErrValkeyConnection, err)
	}
	st, err := ParseStrategy(name)
	if err != nil {
		return 0, false, err
	}
	return st, true, nil
}

// SaveStrategy はストラテジーを保存し、変更履歴を先頭に追加する。
func (s *ValkeyStateStore) SaveStrategy(ctx context.Context, st Strategy, change Change) error {
	entry, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}
	pipe := s.vc.Client().TxPipeline()
	pipe.Set(ctx, store.KeyMigrationStrategy, st.String(), 0)
	pipe.LPush(ctx, store.KeyMigrationHistory, entry)
	pipe.LTrim(ctx, store.KeyMigrationHistory, 0, HistoryLimit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValkeyConnection, err)
	}
	return nil
}

// History は新しい順に変更履歴を返す。
func (s *ValkeyStateStore) History(ctx context.Context, limit int) ([]Change, error) {
	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}
	raw, err := s.vc.Client().LRange(ctx, store.KeyMigrationHistory, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValkeyConnection, err)
	}
	changes := make([]Change, 0, len(raw))
	for _, r := range raw {
		var c Change
		if err := json.Unmarshal([]byte(r), &c); err != nil {
			continue
		}
		changes = append(changes, c)
	}
	return changes, nil
}
