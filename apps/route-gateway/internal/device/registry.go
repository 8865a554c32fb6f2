package device

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/store"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/apperr"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/valkey"
)

// DeviceTTL はドライバー毎の端末情報の保持期間。読み出しの度に延長する。
const DeviceTTL = 30 * 24 * time.Hour

// Resolver はドライバーに紐づく端末情報を返す。
type Resolver interface {
	Resolve(ctx context.Context, societe, driver string) (model.DeviceIdentity, error)
}

// Registry は同じドライバーに常に同じ端末情報を割り当てる。
// 固定プロファイルが設定されている場合は全ドライバーでそれを使用する。
type Registry struct {
	vc    *store.ValkeyClient
	gen   *Generator
	fixed *model.DeviceIdentity
}

// NewRegistry は新しいRegistryを生成する。
func NewRegistry(vc *store.ValkeyClient, gen *Generator, fixed *model.DeviceIdentity) *Registry {
	if gen == nil {
		gen = NewGenerator(nil)
	}
	return &Registry{vc: vc, gen: gen, fixed: fixed}
}

// Resolve はドライバーの端末情報を取得し、未登録なら生成して登録する。
// 同時登録はSET NXで先勝ちとする。
func (r *Registry) Resolve(ctx context.Context, societe, driver string) (model.DeviceIdentity, error) {
	if r.fixed != nil {
		return *r.fixed, nil
	}

	key := store.DeviceKey(societe, driver)
	candidate := r.gen.Generate()
	data, err := json.Marshal(candidate)
	if err != nil {
		return model.DeviceIdentity{}, fmt.Errorf("marshal device: %w", err)
	}

	created, err := r.vc.Client().SetNX(ctx, key, data, DeviceTTL).Result()
	if err != nil {
		return model.DeviceIdentity{}, fmt.Errorf("%w: %v", apperr.ErrValkeyConnection, err)
	}
	if created {
		slog.Info("端末情報を新規割当",
			"event_id", "DEVICE_ASSIGNED",
			"societe", societe,
			"model", candidate.Model,
		)
		return candidate, nil
	}

	raw, err := r.vc.Client().GetEx(ctx, key, DeviceTTL).Result()
	if err != nil {
		if valkey.IsKeyNotFound(err) {
			// SETNXとGETの間に失効した場合は生成値を使う
			return candidate, nil
		}
		return model.DeviceIdentity{}, fmt.Errorf("%w: %v", apperr.ErrValkeyConnection, err)
	}

	var dev model.DeviceIdentity
	if err := json.Unmarshal([]byte(raw), &dev); err != nil {
		return model.DeviceIdentity{}, fmt.Errorf("unmarshal device %s: %w", key, err)
	}
	return dev, nil
}
