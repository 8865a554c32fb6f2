package migration

import (
	"sync"
	"time"
)

// StrategyMetrics はストラテジー毎のリクエスト集計。成功率・失敗率は導出値。
type StrategyMetrics struct {
	Total          int64     `json:"total"`
	Successful     int64     `json:"successful"`
	Failed         int64     `json:"failed"`
	WebRequests    int64     `json:"web_requests"`
	MobileRequests int64     `json:"mobile_requests"`
	AvgLatencyMs   float64   `json:"avg_latency_ms"`
	LastUpdate     time.Time `json:"last_update"`
}

// SuccessRate は成功率を返す。サンプルなしの場合は0。
func (m StrategyMetrics) SuccessRate() float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(m.Successful) / float64(m.Total)
}

// FailureRate は失敗率を返す。サンプルなしの場合は0。
func (m StrategyMetrics) FailureRate() float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(m.Failed) / float64(m.Total)
}

// metricsCell はストラテジー1つ分の集計セル。セル毎に独立したロックを持つ。
type metricsCell struct {
	mu sync.Mutex
	m  StrategyMetrics
}

func (c *metricsCell) record(concrete Concrete, success bool, latency time.Duration, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m.Total++
	if success {
		c.m.Successful++
	} else {
		c.m.Failed++
	}
	switch concrete {
	case ConcreteWeb:
		c.m.WebRequests++
	case ConcreteMobile:
		c.m.MobileRequests++
	}
	ms := float64(latency) / float64(time.Millisecond)
	c.m.AvgLatencyMs += (ms - c.m.AvgLatencyMs) / float64(c.m.Total)
	c.m.LastUpdate = now
}

func (c *metricsCell) snapshot() StrategyMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m
}

func (c *metricsCell) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = StrategyMetrics{}
}
