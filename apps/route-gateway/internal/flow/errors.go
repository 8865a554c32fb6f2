package flow

import (
	"errors"
	"fmt"
)

// センチネルエラー
var (
	// ErrInvalidState は無効な状態遷移エラー
	ErrInvalidState = errors.New("invalid flow state transition")

	// ErrLoginIncomplete はログイン成功後にトークンまたはマトリキュールが欠けている場合のエラー
	ErrLoginIncomplete = errors.New("login did not yield token and matricule")
)

// StepFailedError は致命的なステップ失敗を表す。
type StepFailedError struct {
	Step  Step
	Cause error
}

func (e *StepFailedError) Error() string {
	return fmt.Sprintf("flow step %s failed: %v", e.Step, e.Cause)
}

func (e *StepFailedError) Unwrap() error {
	return e.Cause
}

// ReconnectError は再接続（短絡経路）の失敗を表す。
// 新規フローの失敗（StepFailedError）とは区別する。
type ReconnectError struct {
	Cause error
}

func (e *ReconnectError) Error() string {
	return fmt.Sprintf("reconnect failed: %v", e.Cause)
}

func (e *ReconnectError) Unwrap() error {
	return e.Cause
}
