package integration

import (
	"context"
	"fmt"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/carrier"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/device"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/flow"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
	"github.com/google/uuid"
)

// base はweb/mobile共通の再接続とマニフェスト取得を提供する。
type base struct {
	client  CarrierClient
	devices device.Resolver
	runner  *flow.Runner
}

func (b *base) device(ctx context.Context, societe, username string) (model.DeviceIdentity, error) {
	dev, err := b.devices.Resolve(ctx, societe, username)
	if err != nil {
		return model.DeviceIdentity{}, fmt.Errorf("resolve device: %w", err)
	}
	return dev, nil
}

// Reconnect は保持済みトークンをキャリアで更新し、READYへ短絡させる。
func (b *base) Reconnect(ctx context.Context, creds Credentials, token *model.SessionToken) (*flow.Result, error) {
	dev, err := b.device(ctx, creds.Societe, creds.Username)
	if err != nil {
		return nil, &flow.ReconnectError{Cause: err}
	}
	return b.runner.Reconnect(ctx, token, &refresher{client: b.client, device: dev, creds: creds})
}

// FetchManifest はセッションのトークンでマニフェストを取得する。
func (b *base) FetchManifest(ctx context.Context, sess Session, date string) ([]byte, error) {
	dev, err := b.device(ctx, sess.Societe, sess.Username)
	if err != nil {
		return nil, err
	}
	activityID := sess.ActivityID
	if activityID == "" {
		activityID = uuid.NewString()
	}
	call := carrier.Call{
		Device:     dev,
		ActivityID: activityID,
		Username:   sess.Username,
		Token:      sess.Token,
		Societe:    sess.Societe,
	}
	return b.client.FetchManifest(ctx, call, sess.Societe, sess.Matricule, date)
}

// refresher はflow.Refresherのキャリア実装。
type refresher struct {
	client CarrierClient
	device model.DeviceIdentity
	creds  Credentials
}

func (r *refresher) Refresh(ctx context.Context, st *flow.FlowState) error {
	res, err := r.client.Refresh(ctx, carrier.Call{
		Device:     r.device,
		ActivityID: st.ActivityID,
		Username:   r.creds.Username,
		Token:      st.Token,
		Societe:    r.creds.Societe,
	})
	if err != nil {
		return err
	}
	st.Token = res.Token
	if res.Matricule != "" {
		st.Matricule = res.Matricule
	}
	return nil
}
