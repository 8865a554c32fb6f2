package flow

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/apperr"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
	"github.com/google/uuid"
)

// FlowState は1回の認証試行で引き回す可変状態。試行間で共有しない。
type FlowState struct {
	State      State
	Token      string
	Matricule  string
	SessionID  string
	ActivityID string
	FailReason string
}

// StepTiming は1ステップの計測結果。
type StepTiming struct {
	Step      Step          `json:"step"`
	Duration  time.Duration `json:"duration"`
	Tolerated bool          `json:"tolerated,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// Result は認証試行の結果。失敗時も計測値を含めて返す。
type Result struct {
	FlowState
	Timings []StepTiming
	Total   time.Duration
}

// Steps はキャリア側の各ステップ呼び出しを定義する。
// 実装は成功時にFlowStateのToken/Matriculeを更新する。
type Steps interface {
	DeviceAudit(ctx context.Context, st *FlowState) error
	VersionCheck(ctx context.Context, st *FlowState) error
	LoginPrincipal(ctx context.Context, st *FlowState) error
	LoggingAutomatico(ctx context.Context, st *FlowState) error
}

// Refresher は既存トークンの更新を行う。成功時にFlowState.Tokenを更新する。
type Refresher interface {
	Refresh(ctx context.Context, st *FlowState) error
}

// Runner は認証ステップを順番に実行する。
type Runner struct {
	now   func() time.Time
	newID func() string
}

// NewRunner は新しいRunnerを生成する。
func NewRunner() *Runner {
	return &Runner{now: time.Now, newID: uuid.NewString}
}

// Run は4ステップの認証フローを実行する。
// ActivityIDは呼び出し毎に新規発行し、リトライ間で再利用しない。
func (r *Runner) Run(ctx context.Context, steps Steps) (*Result, error) {
	res := &Result{FlowState: FlowState{
		State:      StateStart,
		SessionID:  r.newID(),
		ActivityID: r.newID(),
	}}
	start := r.now()
	defer func() { res.Total = r.now().Sub(start) }()

	calls := map[Step]func(context.Context, *FlowState) error{
		StepDeviceAudit:       steps.DeviceAudit,
		StepVersionCheck:      steps.VersionCheck,
		StepLoginPrincipal:    r.login(steps),
		StepLoggingAutomatico: steps.LoggingAutomatico,
	}

	for _, step := range stepOrder {
		next, err := ValidateTransition(res.State, EventStepStarted)
		if err != nil {
			return res, err
		}
		res.State = next

		stepStart := r.now()
		stepErr := ctx.Err()
		if stepErr == nil {
			stepErr = calls[step](ctx, &res.FlowState)
		}
		timing := StepTiming{Step: step, Duration: r.now().Sub(stepStart)}

		sr := StepResult{Step: step, Err: stepErr, HasToken: res.Token != ""}
		next, err = Transition(res.State, sr)
		if err != nil {
			return res, err
		}
		res.State = next

		if stepErr != nil {
			timing.Error = stepErr.Error()
			timing.Tolerated = next != StateFailed
		}
		res.Timings = append(res.Timings, timing)

		if next == StateFailed {
			res.FailReason = string(step) + ": " + stepErr.Error()
			slog.Warn("認証ステップ失敗",
				logging.WithEventID("FLOW_STEP_FAILED"),
				logging.WithActivityID(res.ActivityID),
				logging.WithStep(string(step)),
				logging.WithLatency(timing.Duration.Milliseconds()),
				logging.WithError(stepErr),
			)
			return res, &StepFailedError{Step: step, Cause: stepErr}
		}
		if timing.Tolerated {
			slog.Info("認証ステップ失敗を許容",
				logging.WithEventID("FLOW_STEP_TOLERATED"),
				logging.WithActivityID(res.ActivityID),
				logging.WithStep(string(step)),
				logging.WithError(stepErr),
			)
		}
	}

	next, err := ValidateTransition(res.State, EventFlowFinished)
	if err != nil {
		return res, err
	}
	res.State = next

	slog.Debug("認証フロー完了",
		logging.WithEventID("FLOW_READY"),
		logging.WithActivityID(res.ActivityID),
		slog.String("token", logging.MaskToken(res.Token)),
		logging.WithLatency(r.now().Sub(start).Milliseconds()),
	)
	return res, nil
}

// login はログイン結果にトークンとマトリキュールが揃っていることを保証する。
func (r *Runner) login(steps Steps) func(context.Context, *FlowState) error {
	return func(ctx context.Context, st *FlowState) error {
		if err := steps.LoginPrincipal(ctx, st); err != nil {
			return err
		}
		if st.Token == "" || st.Matricule == "" {
			return ErrLoginIncomplete
		}
		return nil
	}
}

// Reconnect は保持済みトークンで状態をREADYへ短絡させる。
// ローカルの期限確認の後、キャリアでトークンを更新する。
func (r *Runner) Reconnect(ctx context.Context, token *model.SessionToken, refresher Refresher) (*Result, error) {
	res := &Result{FlowState: FlowState{
		State:      StateStart,
		SessionID:  r.newID(),
		ActivityID: r.newID(),
	}}
	start := r.now()
	defer func() { res.Total = r.now().Sub(start) }()

	fail := func(cause error) (*Result, error) {
		res.State = StateFailed
		res.FailReason = string(StepReconnect) + ": " + cause.Error()
		res.Timings = append(res.Timings, StepTiming{Step: StepReconnect, Duration: r.now().Sub(start), Error: cause.Error()})
		return res, &ReconnectError{Cause: cause}
	}

	if token == nil || token.Token == "" {
		return fail(apperr.ErrSessionNotFound)
	}
	if !token.ValidAt(r.now()) {
		return fail(apperr.ErrSessionExpired)
	}

	res.Token = token.Token
	res.Matricule = token.Matricule
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if err := refresher.Refresh(ctx, &res.FlowState); err != nil {
		return fail(err)
	}
	if res.Token == "" {
		return fail(ErrLoginIncomplete)
	}

	res.State = StateReady
	res.Timings = append(res.Timings, StepTiming{Step: StepReconnect, Duration: r.now().Sub(start)})
	return res, nil
}
