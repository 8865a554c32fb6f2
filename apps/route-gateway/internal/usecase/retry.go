package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/carrier"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/integration"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/manifest"
)

// RetryPolicy はフロー全体の再試行方針。
type RetryPolicy interface {
	// Backoff はattempt回目（1始まり）の失敗後の待機時間を返す。falseの場合は再試行しない。
	Backoff(attempt int) (time.Duration, bool)
}

// NoRetry は再試行しない。
type NoRetry struct{}

// Backoff は常にfalseを返す。
func (NoRetry) Backoff(int) (time.Duration, bool) {
	return 0, false
}

// ExponentialBackoff は上限付き指数バックオフ。
type ExponentialBackoff struct {
	MaxAttempts int
	Base        time.Duration
	Max         time.Duration
}

// Backoff はBase*2^(attempt-1)をMaxで頭打ちにした待機時間を返す。
func (b ExponentialBackoff) Backoff(attempt int) (time.Duration, bool) {
	if attempt >= b.MaxAttempts {
		return 0, false
	}
	d := b.Base
	for i := 1; i < attempt; i++ {
		d *= 2
		if b.Max > 0 && d >= b.Max {
			return b.Max, true
		}
	}
	if b.Max > 0 && d > b.Max {
		d = b.Max
	}
	return d, true
}

// NewRetryPolicy は最大試行回数から再試行方針を生成する。1以下の場合はNoRetry。
func NewRetryPolicy(maxAttempts int, base, max time.Duration) RetryPolicy {
	if maxAttempts <= 1 {
		return NoRetry{}
	}
	return ExponentialBackoff{MaxAttempts: maxAttempts, Base: base, Max: max}
}

// retryable はフロー全体の再試行で結果が変わり得るエラーかどうかを返す。
// 認可拒否は再試行対象。拒否されたトークンは破棄済みのため次の試行は新規ログインになる。
func retryable(err error) bool {
	var nre *integration.NotRegisteredError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, carrier.ErrCircuitOpen):
		return false
	case errors.Is(err, manifest.ErrMalformedManifest):
		return false
	case errors.As(err, &nre):
		return false
	}
	return true
}

// sleep はctxのキャンセルを考慮して待機する。
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
