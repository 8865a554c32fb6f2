package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/carrier"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/flow"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/integration"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/manifest"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/migration"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/apperr"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
)

// Request はルート取得リクエスト。Matriculeは任意（未指定時はログイン結果を使う）。
type Request struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Societe   string `json:"societe"`
	Date      string `json:"date"`
	Matricule string `json:"matricule,omitempty"`
}

// Response はルート取得結果。失敗時もMessageとStrategyを返す。
type Response struct {
	Success    bool                  `json:"success"`
	Message    string                `json:"message"`
	Strategy   string                `json:"strategy"`
	Concrete   string                `json:"integration"`
	Manifest   *model.CachedManifest `json:"manifest,omitempty"`
	FromCache  bool                  `json:"from_cache"`
	Attempts   int                   `json:"attempts"`
	ActivityID string                `json:"activity_id,omitempty"`
	Timings    []flow.StepTiming     `json:"timings,omitempty"`
}

// Options はTourneeUseCaseの設定。
type Options struct {
	TokenLifetimeHours int
	Retry              RetryPolicy
}

// TourneeUseCase は振り分け・認証・取得・キャッシュ・集計を統括する。
type TourneeUseCase struct {
	router       Router
	integrations IntegrationProvider
	manifests    ManifestStore
	tokens       TokenStore
	fields       *logging.CommonFields
	opts         Options
	now          func() time.Time
}

// NewTourneeUseCase は新しいTourneeUseCaseを生成する。
func NewTourneeUseCase(
	router Router,
	integrations IntegrationProvider,
	manifests ManifestStore,
	tokens TokenStore,
	fields *logging.CommonFields,
	opts Options,
) *TourneeUseCase {
	if opts.Retry == nil {
		opts.Retry = NoRetry{}
	}
	if opts.TokenLifetimeHours <= 0 {
		opts.TokenLifetimeHours = model.DefaultTokenLifetimeHours
	}
	if fields == nil {
		fields = logging.NewCommonFields(nil)
	}
	return &TourneeUseCase{
		router:       router,
		integrations: integrations,
		manifests:    manifests,
		tokens:       tokens,
		fields:       fields,
		opts:         opts,
		now:          time.Now,
	}
}

// Validate はリクエストの必須項目と日付形式を検証する。
func (r *Request) Validate() error {
	switch {
	case r.Username == "":
		return apperr.NewValidationError("username", "required")
	case r.Password == "":
		return apperr.NewValidationError("password", "required")
	case r.Societe == "":
		return apperr.NewValidationError("societe", "required")
	case r.Date == "":
		return apperr.NewValidationError("date", "required")
	}
	if _, err := time.Parse(time.DateOnly, r.Date); err != nil {
		return fmt.Errorf("%w: %q", apperr.ErrInvalidDate, r.Date)
	}
	return nil
}

// GetTournee は指定日のルートを取得する。
// 失敗時もResponseを返し、errorで失敗種別を伝える。
func (uc *TourneeUseCase) GetTournee(ctx context.Context, req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return &Response{Message: err.Error()}, err
	}

	a := uc.router.Decide(migration.Fingerprint{
		Username:  req.Username,
		Societe:   req.Societe,
		Matricule: req.Matricule,
		Date:      req.Date,
	})
	resp := &Response{Strategy: a.Strategy.String(), Concrete: string(a.Concrete)}

	cached, found, err := uc.manifests.Get(ctx, req.Societe, req.Username, req.Date)
	if err != nil {
		slog.Warn("マニフェストキャッシュ読み込み失敗",
			logging.WithEventID("CACHE_READ_ERR"),
			logging.WithError(err),
		)
	}
	if found {
		resp.Success = true
		resp.FromCache = true
		resp.Manifest = cached
		resp.Message = "manifest served from cache"
		return resp, nil
	}

	start := uc.now()
	m, err := uc.run(ctx, req, a, resp)
	latency := uc.now().Sub(start)
	uc.router.RecordOutcome(a.Strategy, a.Concrete, err == nil, latency)
	uc.evaluate(ctx)

	if err != nil {
		resp.Message = failureMessage(err)
		slog.Warn("ルート取得失敗",
			uc.fields.FlowLogFields(resp.ActivityID, "TOURNEE_FAILED", req.Societe, req.Username)...,
		)
		return resp, err
	}

	resp.Success = true
	resp.Manifest = m
	resp.Message = fmt.Sprintf("%d package actions", len(m.Actions))
	slog.Info("ルート取得成功",
		append(uc.fields.FlowLogFields(resp.ActivityID, "TOURNEE_OK", req.Societe, req.Username),
			logging.WithStrategy(resp.Strategy),
			logging.WithLatency(latency.Milliseconds()),
			logging.WithRetryCount(resp.Attempts-1),
		)...,
	)
	return resp, nil
}

// run は再試行方針に従ってフロー全体を実行する。試行毎にActivityIDは新規発行される。
func (uc *TourneeUseCase) run(ctx context.Context, req Request, a migration.Assignment, resp *Response) (*model.CachedManifest, error) {
	integ, err := uc.integrations.Get(a.Concrete)
	if err != nil {
		return nil, err
	}
	for attempt := 1; ; attempt++ {
		resp.Attempts = attempt
		m, err := uc.attempt(ctx, integ, req, resp)
		if err == nil {
			return m, nil
		}
		wait, ok := uc.opts.Retry.Backoff(attempt)
		if !ok || !retryable(err) {
			return nil, err
		}
		slog.Info("ルート取得を再試行",
			logging.WithEventID("TOURNEE_RETRY"),
			logging.WithActivityID(resp.ActivityID),
			logging.WithRetryCount(attempt),
			logging.WithError(err),
		)
		if serr := sleep(ctx, wait); serr != nil {
			return nil, err
		}
	}
}

// attempt は認証・取得・復号・キャッシュ書き込みを1回実行する。
func (uc *TourneeUseCase) attempt(ctx context.Context, integ integration.Integration, req Request, resp *Response) (*model.CachedManifest, error) {
	creds := integration.Credentials{Username: req.Username, Password: req.Password, Societe: req.Societe}

	res, err := uc.authenticate(ctx, integ, creds)
	if res != nil {
		resp.ActivityID = res.ActivityID
		resp.Timings = res.Timings
	}
	if err != nil {
		return nil, err
	}

	matricule := req.Matricule
	if matricule == "" {
		matricule = res.Matricule
	}
	slog.Debug("マニフェスト取得開始",
		logging.WithEventID("MANIFEST_FETCH"),
		logging.WithActivityID(res.ActivityID),
		uc.fields.WithMatricule(matricule),
		slog.String("date", req.Date),
	)
	body, err := integ.FetchManifest(ctx, integration.Session{
		Token:      res.Token,
		Matricule:  matricule,
		Username:   req.Username,
		Societe:    req.Societe,
		ActivityID: res.ActivityID,
	}, req.Date)
	if err != nil {
		if errors.Is(err, apperr.ErrAuthorizationDenied) {
			uc.invalidateToken(ctx, req.Societe, req.Username)
		}
		return nil, err
	}

	parsed, err := manifest.DecodeAndParse(body)
	if err != nil {
		return nil, err
	}
	located := 0
	for _, a := range parsed.Actions {
		if a.HasLocation() {
			located++
		}
	}
	if len(parsed.Actions) == 0 && parsed.Fields.IsEmpty() {
		slog.Warn("マニフェストから抽出できる項目なし",
			logging.WithEventID("MANIFEST_EMPTY"),
			logging.WithActivityID(res.ActivityID),
			slog.Int("unrecognized", len(parsed.Unrecognized)),
		)
	} else {
		slog.Debug("マニフェスト解析完了",
			logging.WithEventID("MANIFEST_PARSED"),
			logging.WithActivityID(res.ActivityID),
			slog.Int("actions", len(parsed.Actions)),
			slog.Int("located", located),
		)
	}

	now := uc.now()
	m := &model.CachedManifest{
		Societe:      req.Societe,
		Driver:       req.Username,
		Date:         req.Date,
		Actions:      parsed.Actions,
		Fields:       parsed.Fields,
		Unrecognized: parsed.Unrecognized,
		RawText:      parsed.RawText,
		LastAccess:   now,
	}
	if err := uc.manifests.Set(ctx, m); err != nil {
		slog.Warn("マニフェストキャッシュ書き込み失敗",
			logging.WithEventID("CACHE_WRITE_ERR"),
			logging.WithError(err),
		)
	}
	return m, nil
}

// authenticate はキャッシュ済みの有効なトークンがあれば再接続し、なければ新規認証する。
// 再接続に失敗したトークンは破棄して新規認証へ切り替える。
func (uc *TourneeUseCase) authenticate(ctx context.Context, integ integration.Integration, creds integration.Credentials) (*flow.Result, error) {
	token, found, err := uc.tokens.Get(ctx, creds.Societe, creds.Username)
	if err != nil {
		slog.Warn("トークンキャッシュ読み込み失敗",
			logging.WithEventID("CACHE_READ_ERR"),
			logging.WithError(err),
		)
	}

	if found && token.ValidAt(uc.now()) {
		res, err := integ.Reconnect(ctx, creds, token)
		if err == nil {
			uc.storeToken(ctx, creds, res)
			return res, nil
		}
		slog.Info("再接続失敗のため新規認証",
			logging.WithEventID("RECONNECT_FALLBACK"),
			logging.WithError(err),
		)
		uc.invalidateToken(ctx, creds.Societe, creds.Username)
	}

	res, err := integ.Authenticate(ctx, creds)
	if err != nil {
		return res, err
	}
	uc.storeToken(ctx, creds, res)
	return res, nil
}

func (uc *TourneeUseCase) storeToken(ctx context.Context, creds integration.Credentials, res *flow.Result) {
	t := model.NewSessionToken(res.Token, creds.Societe, creds.Username, res.Matricule, uc.now(), uc.opts.TokenLifetimeHours)
	if err := uc.tokens.Set(ctx, t); err != nil {
		slog.Warn("トークンキャッシュ書き込み失敗",
			logging.WithEventID("CACHE_WRITE_ERR"),
			logging.WithError(err),
		)
	}
}

func (uc *TourneeUseCase) invalidateToken(ctx context.Context, societe, username string) {
	if err := uc.tokens.Invalidate(ctx, societe, username); err != nil {
		slog.Warn("トークン破棄失敗",
			logging.WithEventID("CACHE_WRITE_ERR"),
			logging.WithError(err),
		)
		return
	}
	slog.Info("拒否されたトークンを破棄",
		logging.WithEventID("TOKEN_INVALIDATED"),
		slog.String(logging.FieldSociete, societe),
		uc.fields.WithUsername(username),
	)
}

// evaluate は自動進行が有効な場合に移行評価を適用する。
func (uc *TourneeUseCase) evaluate(ctx context.Context) {
	if !uc.router.AutoProgression() {
		return
	}
	d, changed, err := uc.router.ApplyEvaluation(ctx)
	if err != nil {
		slog.Error("移行評価の適用失敗",
			logging.WithEventID("MIGRATION_EVAL_ERR"),
			logging.WithError(err),
		)
		return
	}
	if changed {
		slog.Info("移行評価によりストラテジー変更",
			logging.WithEventID("MIGRATION_EVAL_APPLIED"),
			slog.String("action", string(d.Action)),
			logging.WithStrategy(d.To.String()),
		)
	}
}

// failureMessage は失敗種別ごとの利用者向けメッセージを返す。
func failureMessage(err error) string {
	var sfe *flow.StepFailedError
	var rfe *carrier.RequestFailedError
	switch {
	case errors.Is(err, apperr.ErrAuthorizationDenied):
		return "carrier denied authorization: " + err.Error()
	case errors.Is(err, manifest.ErrMalformedManifest):
		return "carrier returned a malformed manifest: " + err.Error()
	case errors.Is(err, carrier.ErrCircuitOpen):
		return "carrier temporarily unavailable: " + err.Error()
	case errors.As(err, &sfe):
		return fmt.Sprintf("authentication failed at %s: %v", sfe.Step, sfe.Cause)
	case errors.As(err, &rfe):
		return fmt.Sprintf("carrier request failed with status %d", rfe.Status)
	}
	return err.Error()
}
