package apperr

import "fmt"

// ValidationError は入力項目の検証エラー。errors.Is(err, ErrInvalidRequest) で判定できる。
type ValidationError struct {
	Field  string // 項目名（JSONキー）
	Reason string // 不正理由
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap はErrInvalidRequestを返す。
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// NewValidationError はValidationErrorを生成する。
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ValkeyError はValkeyコマンドの失敗を操作名・キー付きで表す。
// Kindには ErrValkeyConnection または ErrValkeyCommand を設定する。
type ValkeyError struct {
	Operation string
	Key       string
	Kind      error
	Cause     error
}

func (e *ValkeyError) Error() string {
	msg := fmt.Sprintf("%v: %s", e.Kind, e.Operation)
	if e.Key != "" {
		msg += " " + e.Key
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap は種別と根本原因の両方を返す。
func (e *ValkeyError) Unwrap() []error {
	return []error{e.Kind, e.Cause}
}

// NewValkeyError はValkeyErrorを生成する。
func NewValkeyError(operation, key string, kind, cause error) *ValkeyError {
	return &ValkeyError{Operation: operation, Key: key, Kind: kind, Cause: cause}
}
