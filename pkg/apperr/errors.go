// Package apperr は共通エラー定義を提供する。
package apperr

import "errors"

// キャリア連携関連エラー
var (
	// ErrAuthorizationDenied はキャリアがセッショントークンを拒否した場合のエラー
	ErrAuthorizationDenied = errors.New("authorization denied by carrier")
	// ErrMalformedManifest はマニフェストのBase64/UTF-8デコード失敗エラー
	ErrMalformedManifest = errors.New("malformed manifest")
)

// セッション関連エラー
var (
	// ErrSessionNotFound はセッショントークンが見つからない場合のエラー
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired はセッショントークン有効期限切れエラー
	ErrSessionExpired = errors.New("session expired")
)

// 移行制御関連エラー
var (
	// ErrUnknownStrategy は未定義の移行ストラテジーエラー
	ErrUnknownStrategy = errors.New("unknown migration strategy")
	// ErrNonAdjacentTransition は隣接しないストラテジーへの遷移エラー
	ErrNonAdjacentTransition = errors.New("non-adjacent strategy transition")
)

// インフラ関連エラー
var (
	// ErrValkeyConnection はValkey接続エラー
	ErrValkeyConnection = errors.New("valkey connection error")
	// ErrValkeyCommand はValkeyコマンド実行エラー
	ErrValkeyCommand = errors.New("valkey command error")
)

// バリデーション関連エラー
var (
	// ErrInvalidRequest は不正なリクエストエラー
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidDate は不正な日付形式エラー
	ErrInvalidDate = errors.New("invalid date format")
)
