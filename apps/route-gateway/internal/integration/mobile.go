package integration

import (
	"context"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/carrier"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/device"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/flow"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/migration"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
)

// Mobile は公式モバイルアプリを模した4ステップ認証を行う連携方式。
type Mobile struct {
	base
}

// NewMobile は新しいMobile連携を生成する。
func NewMobile(client CarrierClient, devices device.Resolver, runner *flow.Runner) *Mobile {
	if runner == nil {
		runner = flow.NewRunner()
	}
	return &Mobile{base{client: client, devices: devices, runner: runner}}
}

// Concrete は連携方式を返す。
func (m *Mobile) Concrete() migration.Concrete {
	return migration.ConcreteMobile
}

// Authenticate は端末監査・バージョン確認・ログイン・ログ送信を順に実行する。
// 端末情報の解決は端末監査ステップの一部として計測する。
func (m *Mobile) Authenticate(ctx context.Context, creds Credentials) (*flow.Result, error) {
	return m.runner.Run(ctx, &mobileSteps{
		client: m.client,
		creds:  creds,
		resolve: func(ctx context.Context) (model.DeviceIdentity, error) {
			return m.device(ctx, creds.Societe, creds.Username)
		},
	})
}

// mobileSteps はflow.Stepsのキャリア実装。
type mobileSteps struct {
	client  CarrierClient
	creds   Credentials
	resolve func(context.Context) (model.DeviceIdentity, error)
	device  model.DeviceIdentity
}

func (s *mobileSteps) call(st *flow.FlowState) carrier.Call {
	return carrier.Call{
		Device:     s.device,
		ActivityID: st.ActivityID,
		Username:   s.creds.Username,
		Token:      st.Token,
		Societe:    s.creds.Societe,
	}
}

func (s *mobileSteps) DeviceAudit(ctx context.Context, st *flow.FlowState) error {
	dev, err := s.resolve(ctx)
	if err != nil {
		return err
	}
	s.device = dev

	res, err := s.client.DeviceAudit(ctx, s.call(st))
	if err != nil {
		return err
	}
	if res.Token != "" {
		st.Token = res.Token
	}
	return nil
}

func (s *mobileSteps) VersionCheck(ctx context.Context, st *flow.FlowState) error {
	res, err := s.client.VersionCheck(ctx, s.call(st))
	if err != nil {
		return err
	}
	if res.Token != "" {
		st.Token = res.Token
	}
	return nil
}

func (s *mobileSteps) LoginPrincipal(ctx context.Context, st *flow.FlowState) error {
	res, err := s.client.Login(ctx, s.call(st), s.creds.Password)
	if err != nil {
		return err
	}
	st.Token = res.Token
	st.Matricule = matriculeOrUsername(res.Matricule, s.creds.Username)
	return nil
}

func (s *mobileSteps) LoggingAutomatico(ctx context.Context, st *flow.FlowState) error {
	return s.client.LoggingAutomatico(ctx, s.call(st), st.Matricule)
}

// matriculeOrUsername はキャリアがマトリキュールを返さない場合にログイン名で代替する。
func matriculeOrUsername(matricule, username string) string {
	if matricule != "" {
		return matricule
	}
	return username
}
