package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/carrier"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/flow"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/migration"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/apperr"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
	"go.uber.org/mock/gomock"
)

var testDevice = model.DeviceIdentity{
	Model:          "Sunmi L2K",
	Manufacturer:   "SUNMI",
	OSVersion:      "11",
	InstallationID: "3f1e2d4c-0000-4000-8000-000000000001",
	IMEI:           "356938035643809",
	SerialNumber:   "L2K0001",
}

var testCreds = Credentials{Username: "PCP0010699_A187518", Password: "secret", Societe: "PCP0010699"}

// stubResolver は固定の端末情報を返すテスト用Resolver。
type stubResolver struct {
	err error
}

func (s *stubResolver) Resolve(_ context.Context, _, _ string) (model.DeviceIdentity, error) {
	if s.err != nil {
		return model.DeviceIdentity{}, s.err
	}
	return testDevice, nil
}

func TestMobileAuthenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockCarrierClient(ctrl)
	m := NewMobile(client, &stubResolver{}, nil)

	var activityID string
	gomock.InOrder(
		client.EXPECT().DeviceAudit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, call carrier.Call) (*carrier.AuditResult, error) {
				if call.Device != testDevice || call.Societe != "PCP0010699" {
					t.Errorf("unexpected call: %+v", call)
				}
				activityID = call.ActivityID
				return &carrier.AuditResult{Registered: true}, nil
			}),
		client.EXPECT().VersionCheck(gomock.Any(), gomock.Any()).Return(&carrier.VersionResult{UpToDate: true}, nil),
		client.EXPECT().Login(gomock.Any(), gomock.Any(), "secret").DoAndReturn(
			func(_ context.Context, call carrier.Call, _ string) (*carrier.LoginResult, error) {
				if call.ActivityID != activityID {
					t.Errorf("ActivityID changed within one flow: %q != %q", call.ActivityID, activityID)
				}
				return &carrier.LoginResult{Token: "sso-abc", Matricule: "A187518"}, nil
			}),
		client.EXPECT().LoggingAutomatico(gomock.Any(), gomock.Any(), "A187518").DoAndReturn(
			func(_ context.Context, call carrier.Call, _ string) error {
				if call.Token != "sso-abc" {
					t.Errorf("LoggingAutomatico token = %q", call.Token)
				}
				return nil
			}),
	)

	res, err := m.Authenticate(context.Background(), testCreds)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if res.State != flow.StateReady || res.Token != "sso-abc" || res.Matricule != "A187518" {
		t.Errorf("result = %+v", res)
	}
	if m.Concrete() != migration.ConcreteMobile {
		t.Errorf("Concrete() = %v", m.Concrete())
	}
}

func TestMobileAuthenticateAuditTokenCarriesForward(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockCarrierClient(ctrl)
	m := NewMobile(client, &stubResolver{}, nil)

	client.EXPECT().DeviceAudit(gomock.Any(), gomock.Any()).Return(&carrier.AuditResult{Token: "audit-token"}, nil)
	client.EXPECT().VersionCheck(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, call carrier.Call) (*carrier.VersionResult, error) {
			if call.Token != "audit-token" {
				t.Errorf("VersionCheck token = %q, want audit-token", call.Token)
			}
			return nil, errors.New("503")
		})
	client.EXPECT().Login(gomock.Any(), gomock.Any(), "secret").Return(&carrier.LoginResult{Token: "sso-abc"}, nil)
	client.EXPECT().LoggingAutomatico(gomock.Any(), gomock.Any(), testCreds.Username).Return(errors.New("500"))

	res, err := m.Authenticate(context.Background(), testCreds)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if res.State != flow.StateReady {
		t.Errorf("State = %v, want READY", res.State)
	}
	if res.Matricule != testCreds.Username {
		t.Errorf("Matricule = %q, want username fallback", res.Matricule)
	}
}

func TestMobileAuthenticateLoginDenied(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockCarrierClient(ctrl)
	m := NewMobile(client, &stubResolver{}, nil)

	denied := &carrier.RequestFailedError{Endpoint: carrier.EndpointLogin, Status: 401, Body: carrier.DeniedMessage}
	client.EXPECT().DeviceAudit(gomock.Any(), gomock.Any()).Return(&carrier.AuditResult{}, nil)
	client.EXPECT().VersionCheck(gomock.Any(), gomock.Any()).Return(&carrier.VersionResult{}, nil)
	client.EXPECT().Login(gomock.Any(), gomock.Any(), "secret").Return(nil, denied)

	res, err := m.Authenticate(context.Background(), testCreds)
	var sfe *flow.StepFailedError
	if !errors.As(err, &sfe) || sfe.Step != flow.StepLoginPrincipal {
		t.Fatalf("Authenticate() error = %v, want LoginPrincipal failure", err)
	}
	if !errors.Is(err, apperr.ErrAuthorizationDenied) {
		t.Error("error should unwrap to ErrAuthorizationDenied")
	}
	if res.State != flow.StateFailed {
		t.Errorf("State = %v, want FAILED", res.State)
	}
}

func TestMobileAuthenticateDeviceResolveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockCarrierClient(ctrl)
	m := NewMobile(client, &stubResolver{err: apperr.ErrValkeyConnection}, nil)

	res, err := m.Authenticate(context.Background(), testCreds)
	var sfe *flow.StepFailedError
	if !errors.As(err, &sfe) || sfe.Step != flow.StepDeviceAudit || !errors.Is(err, apperr.ErrValkeyConnection) {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if res == nil {
		t.Fatal("Authenticate() returned nil result on failure")
	}
	if res.State != flow.StateFailed || res.ActivityID == "" {
		t.Errorf("State = %v ActivityID = %q", res.State, res.ActivityID)
	}
	if len(res.Timings) != 1 || res.Timings[0].Step != flow.StepDeviceAudit || res.Timings[0].Error == "" {
		t.Errorf("Timings = %+v, want one failed DeviceAudit timing", res.Timings)
	}
}

func TestWebAuthenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockCarrierClient(ctrl)
	w := NewWeb(client, &stubResolver{}, nil)

	client.EXPECT().Login(gomock.Any(), gomock.Any(), "secret").Return(&carrier.LoginResult{Token: "sso-web", Matricule: "A187518"}, nil)

	res, err := w.Authenticate(context.Background(), testCreds)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if res.State != flow.StateReady || res.Token != "sso-web" {
		t.Errorf("result = %+v", res)
	}
	if len(res.Timings) != 1 || res.Timings[0].Step != flow.StepLoginPrincipal {
		t.Errorf("Timings = %+v, want login only", res.Timings)
	}
	if w.Concrete() != migration.ConcreteWeb {
		t.Errorf("Concrete() = %v", w.Concrete())
	}
}

func TestWebAuthenticateFailures(t *testing.T) {
	tests := []struct {
		name    string
		result  *carrier.LoginResult
		err     error
		wantErr error
	}{
		{"キャリアエラー", nil, &carrier.RequestFailedError{Status: 500}, nil},
		{"トークンなし", &carrier.LoginResult{}, nil, flow.ErrLoginIncomplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := NewMockCarrierClient(ctrl)
			w := NewWeb(client, &stubResolver{}, nil)
			client.EXPECT().Login(gomock.Any(), gomock.Any(), "secret").Return(tt.result, tt.err)

			res, err := w.Authenticate(context.Background(), testCreds)
			var sfe *flow.StepFailedError
			if !errors.As(err, &sfe) {
				t.Fatalf("Authenticate() error = %v, want *StepFailedError", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if res.State != flow.StateFailed || res.FailReason == "" {
				t.Errorf("result = %+v", res)
			}
		})
	}
}

func TestReconnect(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockCarrierClient(ctrl)
	m := NewMobile(client, &stubResolver{}, nil)
	token := model.NewSessionToken("old", "PCP0010699", testCreds.Username, "A187518", time.Now().Add(-time.Hour), 24)

	client.EXPECT().Refresh(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, call carrier.Call) (*carrier.LoginResult, error) {
			if call.Token != "old" {
				t.Errorf("Refresh token = %q, want old", call.Token)
			}
			return &carrier.LoginResult{Token: "new"}, nil
		})

	res, err := m.Reconnect(context.Background(), testCreds, token)
	if err != nil {
		t.Fatalf("Reconnect() error = %v", err)
	}
	if res.Token != "new" || res.Matricule != "A187518" || res.State != flow.StateReady {
		t.Errorf("result = %+v", res)
	}
}

func TestReconnectExpiredSkipsCarrier(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockCarrierClient(ctrl)
	w := NewWeb(client, &stubResolver{}, nil)
	token := model.NewSessionToken("old", "PCP0010699", testCreds.Username, "A187518", time.Now().Add(-25*time.Hour), 24)

	_, err := w.Reconnect(context.Background(), testCreds, token)
	var re *flow.ReconnectError
	if !errors.As(err, &re) || !errors.Is(err, apperr.ErrSessionExpired) {
		t.Errorf("Reconnect() error = %v, want ReconnectError(ErrSessionExpired)", err)
	}
}

func TestFetchManifest(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockCarrierClient(ctrl)
	m := NewMobile(client, &stubResolver{}, nil)

	client.EXPECT().FetchManifest(gomock.Any(), gomock.Any(), "PCP0010699", "A187518", "2025-03-01").DoAndReturn(
		func(_ context.Context, call carrier.Call, _, _, _ string) ([]byte, error) {
			if call.Token != "sso" || call.ActivityID == "" || call.Device != testDevice {
				t.Errorf("unexpected call: %+v", call)
			}
			return []byte("Ym9uam91cg=="), nil
		})

	body, err := m.FetchManifest(context.Background(), Session{
		Token: "sso", Matricule: "A187518", Username: testCreds.Username, Societe: "PCP0010699",
	}, "2025-03-01")
	if err != nil || string(body) != "Ym9uam91cg==" {
		t.Errorf("FetchManifest() = %q, %v", body, err)
	}
}

func TestRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockCarrierClient(ctrl)
	web := NewWeb(client, &stubResolver{}, nil)
	mobile := NewMobile(client, &stubResolver{}, nil)
	r := NewRegistry(web, mobile)

	t.Run("登録済み", func(t *testing.T) {
		got, err := r.Get(migration.ConcreteMobile)
		if err != nil || got != Integration(mobile) {
			t.Errorf("Get(mobile) = %v, %v", got, err)
		}
	})

	t.Run("未登録", func(t *testing.T) {
		_, err := NewRegistry(web).Get(migration.ConcreteMobile)
		var nre *NotRegisteredError
		if !errors.As(err, &nre) || nre.Concrete != migration.ConcreteMobile {
			t.Errorf("Get() error = %v, want NotRegisteredError", err)
		}
		if err.Error() != `integration "mobile" is not registered` {
			t.Errorf("Error() = %q", err.Error())
		}
	})
}
