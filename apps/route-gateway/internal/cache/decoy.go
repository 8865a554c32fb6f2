package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/store"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
)

// decoyDaySpread はダミーエントリの日付を散らす範囲（日）。
const decoyDaySpread = 3

// Decoys はdecoy:名前空間に空のダミーマニフェストを書き込む。
// 実リクエストのキーとは名前空間が分離しており、呼び出し元に返ることはない。
type Decoys struct {
	kv     KV
	policy *TTLPolicy
	now    func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewDecoys は新しいDecoysを生成する。
func NewDecoys(kv KV, policy *TTLPolicy, rnd *rand.Rand) *Decoys {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Decoys{kv: kv, policy: policy, now: time.Now, rnd: rnd}
}

// DecoyKey はダミーエントリのキーを返す。
func DecoyKey(societe, driver, date string) string {
	return store.KeyPrefixDecoy + societe + ":" + driver + ":" + date
}

// Populate はn件のダミーエントリを書き込み、書き込んだ件数を返す。
// カモフラージュ無効時は何もしない。
func (d *Decoys) Populate(ctx context.Context, n int) (int, error) {
	if !d.policy.Camouflage || n <= 0 {
		return 0, nil
	}

	now := d.now()
	written := 0
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		societe, driver, date := d.synthetic(now)
		ttl := d.policy.Next()
		entry := model.CachedManifest{
			Societe:       societe,
			Driver:        driver,
			Date:          date,
			Actions:       []model.PackageAction{},
			ExpiresAt:     now.Add(ttl),
			LastAccess:    now,
			FormatVersion: model.ManifestFormatVersion,
		}
		data, err := json.Marshal(&entry)
		if err != nil {
			return written, fmt.Errorf("marshal decoy: %w", err)
		}
		if err := d.kv.Set(ctx, DecoyKey(societe, driver, date), string(data), ttl); err != nil {
			return written, err
		}
		written++
	}

	slog.Debug("ダミーエントリを生成",
		logging.WithEventID("CACHE_DECOYS_POPULATED"),
		slog.Int("count", written),
	)
	return written, nil
}

// synthetic は架空のsociete/ドライバー/日付を生成する。
func (d *Decoys) synthetic(now time.Time) (societe, driver, date string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	societe = fmt.Sprintf("PCP%07d", d.rnd.IntN(10_000_000))
	driver = fmt.Sprintf("A%06d", d.rnd.IntN(1_000_000))
	offset := d.rnd.IntN(2*decoyDaySpread+1) - decoyDaySpread
	date = now.AddDate(0, 0, offset).Format(time.DateOnly)
	return societe, driver, date
}
