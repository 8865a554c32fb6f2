// Package integration はキャリア連携方式（web/mobile）を提供する。
package integration

import (
	"context"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/carrier"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/flow"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/migration"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
)

//go:generate mockgen -source=interface.go -destination=mock_interface_test.go -package=integration

// Credentials はドライバーの資格情報。
type Credentials struct {
	Username string
	Password string
	Societe  string
}

// Session は認証済みセッション。マニフェスト取得に使う。
type Session struct {
	Token      string
	Matricule  string
	Username   string
	Societe    string
	ActivityID string
}

// Integration はキャリア連携方式のインターフェース。
type Integration interface {
	// Concrete は連携方式を返す。
	Concrete() migration.Concrete
	// Authenticate は新規に認証を行う。
	Authenticate(ctx context.Context, creds Credentials) (*flow.Result, error)
	// Reconnect は保持済みトークンで再接続する。
	Reconnect(ctx context.Context, creds Credentials, token *model.SessionToken) (*flow.Result, error)
	// FetchManifest はマニフェスト本文を取得する。
	FetchManifest(ctx context.Context, sess Session, date string) ([]byte, error)
}

// CarrierClient は連携方式が使うキャリアAPI呼び出しを定義する。
type CarrierClient interface {
	DeviceAudit(ctx context.Context, call carrier.Call) (*carrier.AuditResult, error)
	VersionCheck(ctx context.Context, call carrier.Call) (*carrier.VersionResult, error)
	Login(ctx context.Context, call carrier.Call, password string) (*carrier.LoginResult, error)
	Refresh(ctx context.Context, call carrier.Call) (*carrier.LoginResult, error)
	LoggingAutomatico(ctx context.Context, call carrier.Call, matricule string) error
	FetchManifest(ctx context.Context, call carrier.Call, societe, matricule, date string) ([]byte, error)
}
