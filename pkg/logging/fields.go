package logging

import "log/slog"

// ログフィールド名の定数
const (
	FieldActivityID = "activity_id"
	FieldEventID    = "event_id"
	FieldError      = "error"
	FieldLatencyMs  = "latency_ms"
	FieldHTTPStatus = "http_status"
	FieldRetryCount = "retry_count"
	FieldStrategy   = "strategy"
	FieldStep       = "step"
	FieldSociete    = "societe"
	FieldUsername   = "username"
	FieldMatricule  = "matricule"
)

// WithActivityID はアクティビティIDのslog.Attrを返す。
func WithActivityID(activityID string) slog.Attr {
	return slog.String(FieldActivityID, activityID)
}

// WithEventID はイベントIDのslog.Attrを返す。
func WithEventID(eventID string) slog.Attr {
	return slog.String(FieldEventID, eventID)
}

// WithError はエラーのslog.Attrを返す。
func WithError(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}

// WithLatency はレイテンシ（ミリ秒）のslog.Attrを返す。
func WithLatency(ms int64) slog.Attr {
	return slog.Int64(FieldLatencyMs, ms)
}

// WithHTTPStatus はHTTPステータスコードのslog.Attrを返す。
func WithHTTPStatus(status int) slog.Attr {
	return slog.Int(FieldHTTPStatus, status)
}

// WithRetryCount はリトライ回数のslog.Attrを返す。
func WithRetryCount(count int) slog.Attr {
	return slog.Int(FieldRetryCount, count)
}

// WithStrategy は移行ストラテジー名のslog.Attrを返す。
func WithStrategy(strategy string) slog.Attr {
	return slog.String(FieldStrategy, strategy)
}

// WithStep は認証ステップ名のslog.Attrを返す。
func WithStep(step string) slog.Attr {
	return slog.String(FieldStep, step)
}

// CommonFields はマスキング設定を保持するログフィールド生成器。
type CommonFields struct {
	masker *Masker
}

// NewCommonFields は新しいCommonFieldsを生成する。
func NewCommonFields(masker *Masker) *CommonFields {
	if masker == nil {
		masker = NewMasker(false)
	}
	return &CommonFields{masker: masker}
}

// WithUsername はマスキングされたユーザー名のslog.Attrを返す。
func (cf *CommonFields) WithUsername(username string) slog.Attr {
	return slog.String(FieldUsername, cf.masker.Identifier(username))
}

// WithMatricule はマスキングされたマトリキュールのslog.Attrを返す。
func (cf *CommonFields) WithMatricule(matricule string) slog.Attr {
	return slog.String(FieldMatricule, cf.masker.Identifier(matricule))
}

// FlowLogFields は認証フローログ用の共通フィールドを返す。
func (cf *CommonFields) FlowLogFields(activityID, eventID, societe, username string) []any {
	return []any{
		WithActivityID(activityID),
		WithEventID(eventID),
		slog.String(FieldSociete, societe),
		cf.WithUsername(username),
	}
}
