// Package carrier はキャリア（Colis Privé）APIクライアントを提供する。
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/config"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/headers"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

// Options はキャリアクライアントの接続設定。
type Options struct {
	Name               string // Circuit Breaker名
	AuthURL            string
	MobileURL          string
	LoggingURL         string
	TourneeURL         string
	ManifestPath       string
	LoggingUser        string
	LoggingPass        string
	TokenLifetimeHours int
	RequestTimeout     time.Duration
	ManifestTimeout    time.Duration
}

// OptionsFromConfig は設定からOptionsを生成する。
func OptionsFromConfig(name, manifestPath string, cfg *config.Config) Options {
	return Options{
		Name:               name,
		AuthURL:            strings.TrimRight(cfg.CarrierAuthURL, "/"),
		MobileURL:          strings.TrimRight(cfg.CarrierMobileURL, "/"),
		LoggingURL:         strings.TrimRight(cfg.CarrierLoggingURL, "/"),
		TourneeURL:         strings.TrimRight(cfg.CarrierTourneeURL, "/"),
		ManifestPath:       manifestPath,
		LoggingUser:        cfg.LoggingUser,
		LoggingPass:        cfg.LoggingPass,
		TokenLifetimeHours: cfg.TokenLifetimeHours,
		RequestTimeout:     config.CarrierRequestTimeout,
		ManifestTimeout:    config.CarrierManifestTimeout,
	}
}

// Client はキャリアAPIクライアントの実装。連携方式ごとに1インスタンス生成する。
type Client struct {
	httpClient *resty.Client
	cb         *gobreaker.CircuitBreaker
	builder    *headers.Builder
	app        model.AppIdentity
	opts       Options
}

// NewClient は新しいキャリアクライアントを生成する。
func NewClient(opts Options, builder *headers.Builder, app model.AppIdentity) *Client {
	httpClient := resty.New().
		SetTimeout(opts.ManifestTimeout).
		SetPreRequestHook(func(_ *resty.Client, r *http.Request) error {
			// net/httpはHeaderのHostを無視するため明示的に反映する
			if host := r.Header.Get("Host"); host != "" {
				r.Host = host
			}
			return nil
		})

	cbSettings := gobreaker.Settings{
		Name:        opts.Name,
		MaxRequests: config.CBMaxRequests,
		Interval:    config.CBInterval,
		Timeout:     config.CBTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.CBFailureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			switch to {
			case gobreaker.StateOpen:
				slog.Warn("circuit breaker opened",
					"event_id", "CB_OPEN",
					"cb_name", name,
					"from", from.String(),
				)
			case gobreaker.StateHalfOpen:
				slog.Info("circuit breaker half-open",
					"event_id", "CB_HALF_OPEN",
					"cb_name", name,
				)
			case gobreaker.StateClosed:
				slog.Info("circuit breaker closed",
					"event_id", "CB_CLOSE",
					"cb_name", name,
				)
			}
		},
	}

	return &Client{
		httpClient: httpClient,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		builder:    builder,
		app:        app,
		opts:       opts,
	}
}

// Name はクライアント名を返す。
func (c *Client) Name() string {
	return c.opts.Name
}

func (c *Client) societe(call Call) string {
	if call.Societe != "" {
		return call.Societe
	}
	return c.app.Societe
}

// request は1回のAPI呼び出し定義。
type request struct {
	endpoint  string
	url       string
	category  headers.Category
	body      any
	timeout   time.Duration
	basicAuth bool
}

// DeviceAudit は合成端末をキャリアに登録する。トークンは返らない場合がある。
func (c *Client) DeviceAudit(ctx context.Context, call Call) (*AuditResult, error) {
	body, err := c.do(ctx, call, request{
		endpoint: EndpointDeviceAudit,
		url:      c.opts.MobileURL + PathDeviceAudit,
		category: headers.CategoryDeviceAudit,
		body: deviceAuditRequest{
			IMEI:           call.Device.IMEI,
			SerialNumber:   call.Device.SerialNumber,
			InstallationID: call.Device.InstallationID,
			Model:          call.Device.Model,
			Manufacturer:   call.Device.Manufacturer,
			OSVersion:      headers.CleanOSVersion(call.Device.OSVersion),
			AppVersion:     c.app.Version,
		},
		timeout: c.opts.RequestTimeout,
	})
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return &AuditResult{}, nil
	}

	var raw deviceAuditResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: device audit: %v", ErrInvalidResponse, err)
	}
	return &AuditResult{Registered: raw.Registered, Token: raw.Tokens.SsoHopps}, nil
}

// VersionCheck は模擬アプリのバージョンが最新かを確認する。
func (c *Client) VersionCheck(ctx context.Context, call Call) (*VersionResult, error) {
	body, err := c.do(ctx, call, request{
		endpoint: EndpointVersionCheck,
		url:      c.opts.MobileURL + PathVersionCheck,
		category: headers.CategoryVersionCheck,
		body: versionCheckRequest{
			PackageName: c.app.PackageName,
			Version:     c.app.Version,
			VersionCode: c.app.VersionCode,
		},
		timeout: c.opts.RequestTimeout,
	})
	if err != nil {
		return nil, err
	}

	var raw versionCheckResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: version check: %v", ErrInvalidResponse, err)
	}
	return &VersionResult{
		UpToDate:      raw.IsUpToDate,
		LatestVersion: raw.LatestVersion,
		Token:         raw.Tokens.SsoHopps,
	}, nil
}

// Login は資格情報を交換してSsoHoppsトークンとマトリキュールを取得する。
func (c *Client) Login(ctx context.Context, call Call, password string) (*LoginResult, error) {
	body, err := c.do(ctx, call, request{
		endpoint: EndpointLogin,
		url:      c.opts.AuthURL + PathLogin,
		category: headers.CategoryAuth,
		body: loginRequest{
			Login:    call.Username,
			Password: password,
			Societe:  c.societe(call),
			Commun:   loginCommun{DureeTokenInHour: c.opts.TokenLifetimeHours},
		},
		timeout: c.opts.RequestTimeout,
	})
	if err != nil {
		return nil, err
	}
	return parseLogin(EndpointLogin, body)
}

// Refresh は既存トークンを更新する。
func (c *Client) Refresh(ctx context.Context, call Call) (*LoginResult, error) {
	body, err := c.do(ctx, call, request{
		endpoint: EndpointRefresh,
		url:      c.opts.AuthURL + PathRefresh,
		category: headers.CategoryRefresh,
		body: refreshRequest{
			DureeTokenInHour: c.opts.TokenLifetimeHours,
			Token:            call.Token,
		},
		timeout: c.opts.RequestTimeout,
	})
	if err != nil {
		return nil, err
	}
	return parseLogin(EndpointRefresh, body)
}

// LoggingAutomatico はセッション開始をキャリアに通知する（Basic認証付き）。
func (c *Client) LoggingAutomatico(ctx context.Context, call Call, matricule string) error {
	_, err := c.do(ctx, call, request{
		endpoint: EndpointLoggingAutomatico,
		url:      c.opts.LoggingURL + PathLoggingAutomatico,
		category: headers.CategoryLogging,
		body: loggingRequest{
			Matricule:  matricule,
			Societe:    c.societe(call),
			ActivityID: call.ActivityID,
			Event:      "SESSION_START",
			DeviceID:   call.Device.InstallationID,
		},
		timeout:   c.opts.RequestTimeout,
		basicAuth: true,
	})
	return err
}

// FetchManifest はマニフェストを取得し、レスポンス本文をそのまま返す。
// dateは "2006-01-02" 形式。
func (c *Client) FetchManifest(ctx context.Context, call Call, societe, matricule, date string) ([]byte, error) {
	return c.do(ctx, call, request{
		endpoint: EndpointManifest,
		url:      c.opts.TourneeURL + c.opts.ManifestPath,
		category: headers.CategoryManifest,
		body: manifestRequest{
			Societe:   societe,
			Matricule: matricule,
			DateDebut: date + "T00:00:00.000Z",
		},
		timeout: c.opts.ManifestTimeout,
	})
}

// do はCircuit Breaker経由でPOSTを実行する。
// 5xx（501除く）と接続エラーのみCBの失敗として数える。
func (c *Client) do(ctx context.Context, call Call, req request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, req.timeout)
	defer cancel()

	app := c.app
	app.Societe = c.societe(call)
	built := c.builder.Build(req.category, call.Device, app, call.ActivityID, call.Username, call.Token)
	start := time.Now()

	result, err := c.cb.Execute(func() (any, error) {
		r := c.httpClient.R().
			SetContext(ctx).
			SetBody(req.body)
		for k := range built.Headers {
			r.SetHeader(k, built.Headers.Get(k))
		}
		if req.basicAuth {
			r.SetBasicAuth(c.opts.LoggingUser, c.opts.LoggingPass)
		}

		resp, err := r.Post(req.url)
		if err != nil {
			return nil, &ConnectionError{Endpoint: req.endpoint, Cause: err}
		}

		status := resp.StatusCode()
		body := resp.Body()

		if status >= 500 && status != 501 {
			return nil, &RequestFailedError{Endpoint: req.endpoint, Status: status, Body: string(body)}
		}

		// CB失敗判定対象外: 4xx, 501, 拒否メッセージ
		if status < 200 || status >= 300 || bytes.Contains(body, []byte(DeniedMessage)) {
			return &RequestFailedError{Endpoint: req.endpoint, Status: status, Body: string(body)}, nil
		}

		return body, nil
	})

	latencyMs := time.Since(start).Milliseconds()

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			slog.Warn("carrier request rejected by circuit breaker",
				"event_id", "CARRIER_CB_REJECT",
				"cb_name", c.opts.Name,
				"endpoint", req.endpoint,
				"activity_id", call.ActivityID,
			)
			return nil, ErrCircuitOpen
		}
		logFailure(req.endpoint, call.ActivityID, latencyMs, err)
		return nil, err
	}

	if rfErr, ok := result.(*RequestFailedError); ok {
		logFailure(req.endpoint, call.ActivityID, latencyMs, rfErr)
		return nil, rfErr
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, ErrInvalidResponse
	}

	slog.Debug("carrier api success",
		"endpoint", req.endpoint,
		"activity_id", call.ActivityID,
		"latency_ms", latencyMs,
	)
	return body, nil
}

func logFailure(endpoint, activityID string, latencyMs int64, err error) {
	attrs := []any{
		"event_id", "CARRIER_API_ERR",
		"endpoint", endpoint,
		"activity_id", activityID,
		"error", err.Error(),
		"latency_ms", latencyMs,
	}
	var rfErr *RequestFailedError
	if errors.As(err, &rfErr) {
		attrs = append(attrs, "http_status", rfErr.Status)
		if rfErr.IsAuthorizationDenied() {
			attrs[1] = "CARRIER_AUTH_DENIED"
		}
		if !rfErr.IsServerError() {
			slog.Warn("carrier api error", attrs...)
			return
		}
	}
	slog.Error("carrier api error", attrs...)
}

func parseLogin(endpoint string, body []byte) (*LoginResult, error) {
	var raw loginResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidResponse, endpoint, err)
	}
	if raw.Tokens.SsoHopps == "" {
		return nil, fmt.Errorf("%w: %s: SsoHopps token missing", ErrInvalidResponse, endpoint)
	}
	return &LoginResult{
		Token:     raw.Tokens.SsoHopps,
		Matricule: raw.Matricule,
		Societe:   raw.Societe,
	}, nil
}
