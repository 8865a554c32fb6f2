package carrier

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/apperr"
)

// センチネルエラー
var (
	// ErrCircuitOpen はCircuit BreakerがOpen状態の場合のエラー
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrInvalidResponse はキャリアからのレスポンスが不正な場合のエラー
	ErrInvalidResponse = errors.New("invalid response from carrier")

	// ErrAuthorizationDenied はキャリアがセッショントークンを拒否した場合のエラー
	ErrAuthorizationDenied = apperr.ErrAuthorizationDenied
)

// RequestFailedError はキャリアの非成功レスポンスを表す。
// トークン拒否の場合はErrAuthorizationDeniedにアンラップされる。
type RequestFailedError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("carrier request failed: endpoint=%s, status=%d, body=%s", e.Endpoint, e.Status, truncate(e.Body, 256))
}

// IsAuthorizationDenied はトークン拒否レスポンスかどうかを判定する。
func (e *RequestFailedError) IsAuthorizationDenied() bool {
	return e.Status == http.StatusUnauthorized ||
		e.Status == http.StatusForbidden ||
		strings.Contains(e.Body, DeniedMessage)
}

// IsServerError はサーバーエラーかどうかを判定する。
func (e *RequestFailedError) IsServerError() bool {
	return e.Status >= 500
}

func (e *RequestFailedError) Unwrap() error {
	if e.IsAuthorizationDenied() {
		return ErrAuthorizationDenied
	}
	return nil
}

// ConnectionError は接続エラー（タイムアウト含む）を表す。
type ConnectionError struct {
	Endpoint string
	Cause    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: endpoint=%s: %v", e.Endpoint, e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
