package api

import "time"

// Strategies はゲートウェイが受け付ける移行ストラテジー名（移行順）。
var Strategies = []string{"web_only", "mobile_20", "mobile_50", "mobile_80", "mobile_only"}

// MobilePercentages はStrategiesと同順のmobile連携振り分け割合。
var MobilePercentages = []int{0, 20, 50, 80, 100}

// StrategyMetrics はストラテジー毎の集計値。
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

// Thresholds は自動進行・自動巻き戻しの閾値。
type Thresholds struct {
	Progression float64 `json:"progression"`
	Rollback    float64 `json:"rollback"`
	MinSamples  int64   `json:"min_samples"`
}

// Change はストラテジー変更履歴の1件。
type Change struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	Reason  string          `json:"reason"`
	At      time.Time       `json:"at"`
	Metrics StrategyMetrics `json:"metrics"`
}

// Snapshot は移行状態のスナップショット。
type Snapshot struct {
	Current          string                     `json:"current"`
	MobilePercentage int                        `json:"mobile_percentage"`
	AutoProgression  bool                       `json:"auto_progression"`
	Thresholds       Thresholds                 `json:"thresholds"`
	Metrics          map[string]StrategyMetrics `json:"metrics"`
	At               time.Time                  `json:"at"`
}

// Status はスナップショットと変更履歴。
type Status struct {
	Snapshot
	History []Change `json:"history"`
}

// NextStrategy はnameの次のストラテジー名を返す。末尾または未知の場合はfalse。
func NextStrategy(name string) (string, bool) {
	for i, s := range Strategies {
		if s == name && i+1 < len(Strategies) {
			return Strategies[i+1], true
		}
	}
	return "", false
}

type changeRequest struct {
	Strategy string `json:"strategy"`
	Reason   string `json:"reason,omitempty"`
}

type rollbackRequest struct {
	Reason string `json:"reason,omitempty"`
}

type autoRequest struct {
	Enabled bool `json:"enabled"`
}

type invalidateResponse struct {
	Deleted int64 `json:"deleted"`
}
