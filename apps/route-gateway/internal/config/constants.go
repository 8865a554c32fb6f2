package config

import "time"

// Valkey接続設定
const (
	ValkeyConnectTimeout = 3 * time.Second
	ValkeyCommandTimeout = 2 * time.Second
	ValkeyPoolSize       = 10

	ValkeyMaxRetries      = 2
	ValkeyMinRetryBackoff = 8 * time.Millisecond
	ValkeyMaxRetryBackoff = 512 * time.Millisecond
)

// キャリア接続設定
const (
	CarrierRequestTimeout  = 30 * time.Second
	CarrierManifestTimeout = 60 * time.Second
)

// Circuit Breaker設定（連携方式ごとに1つ）
const (
	CBMaxRequests      = 3
	CBInterval         = 30 * time.Second
	CBTimeout          = 60 * time.Second
	CBFailureThreshold = 5
)

// HTTPサーバー設定。書き込みタイムアウトはキャリア呼び出しを含むため設けず、リクエストのcontextで制御する。
const (
	HTTPReadHeaderTimeout = 5 * time.Second
	HTTPIdleTimeout       = 60 * time.Second
	ShutdownTimeout       = 10 * time.Second
)
