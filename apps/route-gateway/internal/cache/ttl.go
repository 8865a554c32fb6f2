package cache

import (
	"math/rand/v2"
	"sync"
	"time"
)

// JitterTTL はmax(floor, base + U[-spread, +spread]) を返す。
// rndがnilの場合はパッケージのグローバル乱数源を使う。
func JitterTTL(base, spread, floor time.Duration, rnd *rand.Rand) time.Duration {
	ttl := base
	if spread > 0 {
		n := int64(2*spread) + 1
		var off int64
		if rnd != nil {
			off = rnd.Int64N(n)
		} else {
			off = rand.Int64N(n)
		}
		ttl = base + time.Duration(off) - spread
	}
	if ttl < floor {
		return floor
	}
	return ttl
}

// TTLPolicy はマニフェストキャッシュのTTL決定規則。
// カモフラージュ無効時は基準TTLをそのまま使う。
type TTLPolicy struct {
	Base       time.Duration
	Spread     time.Duration
	Floor      time.Duration
	Camouflage bool

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewTTLPolicy は新しいTTLPolicyを生成する。rndがnilの場合はグローバル乱数源を使う。
func NewTTLPolicy(base, spread, floor time.Duration, camouflage bool, rnd *rand.Rand) *TTLPolicy {
	return &TTLPolicy{
		Base:       base,
		Spread:     spread,
		Floor:      floor,
		Camouflage: camouflage,
		rnd:        rnd,
	}
}

// Next は次に書き込むエントリのTTLを返す。
func (p *TTLPolicy) Next() time.Duration {
	if !p.Camouflage {
		return p.Base
	}
	if p.rnd == nil {
		return JitterTTL(p.Base, p.Spread, p.Floor, nil)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return JitterTTL(p.Base, p.Spread, p.Floor, p.rnd)
}
