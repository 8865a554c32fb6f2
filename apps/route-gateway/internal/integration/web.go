package integration

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/carrier"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/device"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/flow"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/migration"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
	"github.com/google/uuid"
)

// Web はWebポータル経由の旧来の連携方式。ログインのみ行う。
type Web struct {
	base
	now func() time.Time
}

// NewWeb は新しいWeb連携を生成する。
func NewWeb(client CarrierClient, devices device.Resolver, runner *flow.Runner) *Web {
	if runner == nil {
		runner = flow.NewRunner()
	}
	return &Web{base: base{client: client, devices: devices, runner: runner}, now: time.Now}
}

// Concrete は連携方式を返す。
func (w *Web) Concrete() migration.Concrete {
	return migration.ConcreteWeb
}

// Authenticate はWebログインを1回実行する。
func (w *Web) Authenticate(ctx context.Context, creds Credentials) (*flow.Result, error) {
	res := &flow.Result{FlowState: flow.FlowState{
		State:      flow.StateLoginInProgress,
		SessionID:  uuid.NewString(),
		ActivityID: uuid.NewString(),
	}}
	start := w.now()

	fail := func(err error) (*flow.Result, error) {
		d := w.now().Sub(start)
		res.State = flow.StateFailed
		res.FailReason = string(flow.StepLoginPrincipal) + ": " + err.Error()
		res.Timings = append(res.Timings, flow.StepTiming{Step: flow.StepLoginPrincipal, Duration: d, Error: err.Error()})
		res.Total = d
		slog.Warn("Webログイン失敗",
			logging.WithEventID("WEB_LOGIN_FAILED"),
			logging.WithActivityID(res.ActivityID),
			logging.WithError(err),
		)
		return res, &flow.StepFailedError{Step: flow.StepLoginPrincipal, Cause: err}
	}

	dev, err := w.device(ctx, creds.Societe, creds.Username)
	if err != nil {
		return fail(err)
	}
	lr, err := w.client.Login(ctx, carrier.Call{
		Device:     dev,
		ActivityID: res.ActivityID,
		Username:   creds.Username,
		Societe:    creds.Societe,
	}, creds.Password)
	if err != nil {
		return fail(err)
	}
	if lr.Token == "" {
		return fail(flow.ErrLoginIncomplete)
	}

	d := w.now().Sub(start)
	res.Token = lr.Token
	res.Matricule = matriculeOrUsername(lr.Matricule, creds.Username)
	res.State = flow.StateReady
	res.Timings = append(res.Timings, flow.StepTiming{Step: flow.StepLoginPrincipal, Duration: d})
	res.Total = d
	return res, nil
}
