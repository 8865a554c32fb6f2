package migration

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/apperr"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
)

// 既定の判定閾値
const (
	DefaultProgressionThreshold = 0.95
	DefaultRollbackThreshold    = 0.90
	DefaultMinSamples           = 100
)

// Thresholds は自動進行・巻き戻しの判定閾値。
type Thresholds struct {
	Progression float64 `json:"progression"`
	Rollback    float64 `json:"rollback"`
	MinSamples  int64   `json:"min_samples"`
}

// DefaultThresholds は既定の閾値を返す。
func DefaultThresholds() Thresholds {
	return Thresholds{
		Progression: DefaultProgressionThreshold,
		Rollback:    DefaultRollbackThreshold,
		MinSamples:  DefaultMinSamples,
	}
}

// Options はControllerの設定。
type Options struct {
	Initial         Strategy
	AutoProgression bool
	Thresholds      Thresholds
}

// Action は評価結果の種別。
type Action string

// 評価結果の定数
const (
	ActionHold     Action = "hold"
	ActionProgress Action = "progress"
	ActionRollback Action = "rollback"
)

// Decision は評価結果。
type Decision struct {
	Action  Action          `json:"action"`
	From    Strategy        `json:"from"`
	To      Strategy        `json:"to"`
	Reason  string          `json:"reason"`
	Metrics StrategyMetrics `json:"metrics"`
}

// Assignment はリクエストの振り分け結果。
type Assignment struct {
	Strategy Strategy
	Concrete Concrete
}

// Snapshot は移行状態の読み取り専用スナップショット。
type Snapshot struct {
	Current          Strategy                     `json:"current"`
	MobilePercentage int                          `json:"mobile_percentage"`
	AutoProgression  bool                         `json:"auto_progression"`
	Thresholds       Thresholds                   `json:"thresholds"`
	Metrics          map[Strategy]StrategyMetrics `json:"metrics"`
	At               time.Time                    `json:"at"`
}

// Controller は移行ストラテジーの振り分け・集計・遷移を管理する。
// 集計はストラテジー毎に独立したセルで保持し、現在のストラテジーはRWMutexで保護する。
type Controller struct {
	mu      sync.RWMutex
	current Strategy

	changeMu   sync.Mutex
	auto       atomic.Bool
	thresholds Thresholds
	cells      [strategyCount]metricsCell
	state      StateStore
	now        func() time.Time
}

// NewController は新しいControllerを生成する。stateがnilの場合は永続化しない。
func NewController(opts Options, state StateStore) *Controller {
	if !opts.Initial.Valid() {
		opts.Initial = WebOnly
	}
	if opts.Thresholds == (Thresholds{}) {
		opts.Thresholds = DefaultThresholds()
	}
	c := &Controller{
		current:    opts.Initial,
		thresholds: opts.Thresholds,
		state:      state,
		now:        time.Now,
	}
	c.auto.Store(opts.AutoProgression)
	return c
}

// Current は現在のストラテジーを返す。
func (c *Controller) Current() Strategy {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Decide はリクエストを現在のストラテジーに従って振り分ける。
func (c *Controller) Decide(fp Fingerprint) Assignment {
	s := c.Current()
	return Assignment{Strategy: s, Concrete: Route(s, fp)}
}

// RecordOutcome はリクエスト結果を該当ストラテジーの集計に加える。
func (c *Controller) RecordOutcome(s Strategy, concrete Concrete, success bool, latency time.Duration) {
	if !s.Valid() {
		return
	}
	c.cells[s].record(concrete, success, latency, c.now())
}

// Metrics はストラテジーの集計を返す。
func (c *Controller) Metrics(s Strategy) StrategyMetrics {
	if !s.Valid() {
		return StrategyMetrics{}
	}
	return c.cells[s].snapshot()
}

// SetAutoProgression は自動進行の有効・無効を切り替える。
func (c *Controller) SetAutoProgression(enabled bool) {
	c.auto.Store(enabled)
	slog.Info("自動進行設定を変更",
		logging.WithEventID("MIGRATION_AUTO_SET"),
		slog.Bool("enabled", enabled),
	)
}

// AutoProgression は自動進行が有効かどうかを返す。
func (c *Controller) AutoProgression() bool {
	return c.auto.Load()
}

// Evaluate は現在のストラテジー自身の集計から進行・巻き戻しを判定する。
// 遷移を推奨する場合のみtrueを返す。
func (c *Controller) Evaluate() (Decision, bool) {
	cur := c.Current()
	m := c.Metrics(cur)
	d := Decision{Action: ActionHold, From: cur, To: cur, Metrics: m}

	if !c.AutoProgression() {
		d.Reason = "auto progression disabled"
		return d, false
	}
	if m.Total < c.thresholds.MinSamples {
		d.Reason = fmt.Sprintf("insufficient samples: %d < %d", m.Total, c.thresholds.MinSamples)
		return d, false
	}

	rate := m.SuccessRate()
	switch {
	case rate >= c.thresholds.Progression:
		next, ok := cur.Next()
		if !ok {
			d.Reason = "already at final strategy"
			return d, false
		}
		d.Action, d.To = ActionProgress, next
		d.Reason = fmt.Sprintf("success rate %.4f >= %.2f", rate, c.thresholds.Progression)
		return d, true
	case rate < c.thresholds.Rollback:
		prev, ok := cur.Previous()
		if !ok {
			d.Reason = "already at initial strategy"
			return d, false
		}
		d.Action, d.To = ActionRollback, prev
		d.Reason = fmt.Sprintf("success rate %.4f < %.2f", rate, c.thresholds.Rollback)
		return d, true
	}
	d.Reason = fmt.Sprintf("success rate %.4f within thresholds", rate)
	return d, false
}

// ApplyEvaluation は評価を行い、推奨があればストラテジーを変更する。
func (c *Controller) ApplyEvaluation(ctx context.Context) (Decision, bool, error) {
	d, ok := c.Evaluate()
	if !ok {
		return d, false, nil
	}
	if err := c.changeFrom(ctx, d.From, d.To, "auto: "+d.Reason); err != nil {
		return d, false, err
	}
	return d, true, nil
}

// ChangeStrategy は隣接ストラテジーへ変更する。
// 共有状態への永続化後に切り替え、変更元の集計ウィンドウをリセットする。
func (c *Controller) ChangeStrategy(ctx context.Context, to Strategy, reason string) error {
	return c.changeFrom(ctx, c.Current(), to, reason)
}

// Rollback は1段階前のストラテジーへ戻す。
func (c *Controller) Rollback(ctx context.Context, reason string) error {
	cur := c.Current()
	prev, ok := cur.Previous()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoNeighbor, cur)
	}
	return c.changeFrom(ctx, cur, prev, reason)
}

// changeFrom は現在値がfromの場合のみtoへ変更する。
func (c *Controller) changeFrom(ctx context.Context, from, to Strategy, reason string) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %d", apperr.ErrUnknownStrategy, int(to))
	}

	c.changeMu.Lock()
	defer c.changeMu.Unlock()

	cur := c.Current()
	if cur != from {
		// 評価後に別経路で変更済み
		return nil
	}
	if cur == to {
		return nil
	}
	if !cur.IsAdjacent(to) {
		return fmt.Errorf("%w: %s -> %s", apperr.ErrNonAdjacentTransition, cur, to)
	}

	change := Change{From: cur, To: to, Reason: reason, At: c.now(), Metrics: c.Metrics(cur)}
	if c.state != nil {
		if err := c.state.SaveStrategy(ctx, to, change); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.current = to
	c.mu.Unlock()
	c.cells[cur].reset()

	slog.Info("移行ストラテジーを変更",
		logging.WithEventID("MIGRATION_STRATEGY_CHANGED"),
		slog.String("from", cur.String()),
		logging.WithStrategy(to.String()),
		slog.String("reason", reason),
		slog.Float64("success_rate", change.Metrics.SuccessRate()),
		slog.Int64("samples", change.Metrics.Total),
	)
	return nil
}

// Sync は共有状態に保存されたストラテジーを取り込む。
// 未保存の場合は自身の現在値を保存する。変更があった場合はtrueを返す。
func (c *Controller) Sync(ctx context.Context) (bool, error) {
	if c.state == nil {
		return false, nil
	}

	c.changeMu.Lock()
	defer c.changeMu.Unlock()

	stored, found, err := c.state.LoadStrategy(ctx)
	if err != nil {
		return false, err
	}
	cur := c.Current()
	if !found {
		change := Change{From: cur, To: cur, Reason: "initial", At: c.now()}
		return false, c.state.SaveStrategy(ctx, cur, change)
	}
	if stored == cur {
		return false, nil
	}

	c.mu.Lock()
	c.current = stored
	c.mu.Unlock()
	c.cells[cur].reset()

	slog.Info("共有状態からストラテジーを同期",
		logging.WithEventID("MIGRATION_STRATEGY_SYNCED"),
		slog.String("from", cur.String()),
		logging.WithStrategy(stored.String()),
	)
	return true, nil
}

// History は変更履歴を新しい順に返す。
func (c *Controller) History(ctx context.Context, limit int) ([]Change, error) {
	if c.state == nil {
		return nil, nil
	}
	return c.state.History(ctx, limit)
}

// Snapshot は現在の移行状態を返す。
func (c *Controller) Snapshot() Snapshot {
	cur := c.Current()
	metrics := make(map[Strategy]StrategyMetrics, strategyCount)
	for _, s := range Strategies() {
		metrics[s] = c.Metrics(s)
	}
	return Snapshot{
		Current:          cur,
		MobilePercentage: cur.MobilePercentage(),
		AutoProgression:  c.AutoProgression(),
		Thresholds:       c.thresholds,
		Metrics:          metrics,
		At:               c.now(),
	}
}
