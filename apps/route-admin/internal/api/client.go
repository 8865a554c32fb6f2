// Package api はroute-gateway管理APIのクライアントを提供する。
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/httputil"
	"github.com/go-resty/resty/v2"
)

// ErrUnreachable はゲートウェイに接続できない場合のエラー。
var ErrUnreachable = errors.New("gateway unreachable")

// APIError はゲートウェイが返したエラーレスポンス。
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("gateway returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("gateway returned %d: %s", e.Status, e.Detail)
}

// IsConflict はストラテジー遷移が拒否された（409）かどうかを返す。
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}

// Client はroute-gateway管理APIクライアント。
type Client struct {
	http *resty.Client
}

// NewClient は新しいClientを生成する。
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// Health はゲートウェイのヘルスチェックを行う。応答本文はProblem Detailではないため解釈しない。
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Detail: "gateway degraded"}
	}
	return nil
}

// Status は移行状態と直近history件の変更履歴を取得する。
func (c *Client) Status(ctx context.Context, history int) (*Status, error) {
	var status Status
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("history", strconv.Itoa(history)).
		SetResult(&status)
	if err := c.send(req, http.MethodGet, "/api/v1/migration/status"); err != nil {
		return nil, err
	}
	return &status, nil
}

// ChangeStrategy はストラテジーを変更する。隣接しない遷移は409で拒否される。
func (c *Client) ChangeStrategy(ctx context.Context, strategy, reason string) (*Snapshot, error) {
	var snap Snapshot
	req := c.http.R().
		SetContext(ctx).
		SetBody(changeRequest{Strategy: strategy, Reason: reason}).
		SetResult(&snap)
	if err := c.send(req, http.MethodPost, "/api/v1/migration/strategy"); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Rollback は1段階前のストラテジーへ巻き戻す。
func (c *Client) Rollback(ctx context.Context, reason string) (*Snapshot, error) {
	var snap Snapshot
	req := c.http.R().
		SetContext(ctx).
		SetBody(rollbackRequest{Reason: reason}).
		SetResult(&snap)
	if err := c.send(req, http.MethodPost, "/api/v1/migration/rollback"); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SetAutoProgression は自動進行を切り替える。
func (c *Client) SetAutoProgression(ctx context.Context, enabled bool) (*Snapshot, error) {
	var snap Snapshot
	req := c.http.R().
		SetContext(ctx).
		SetBody(autoRequest{Enabled: enabled}).
		SetResult(&snap)
	if err := c.send(req, http.MethodPut, "/api/v1/migration/auto"); err != nil {
		return nil, err
	}
	return &snap, nil
}

// InvalidateDriver はドライバーのトークン・マニフェストキャッシュを全て削除し、削除件数を返す。
func (c *Client) InvalidateDriver(ctx context.Context, societe, driver string) (int64, error) {
	var resp invalidateResponse
	req := c.http.R().SetContext(ctx).SetResult(&resp)
	path := "/api/v1/cache/tournee/" + url.PathEscape(societe) + "/" + url.PathEscape(driver)
	if err := c.send(req, http.MethodDelete, path); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}

// DeleteManifest は指定日のマニフェストキャッシュを削除する。
func (c *Client) DeleteManifest(ctx context.Context, societe, driver, date string) error {
	path := "/api/v1/cache/tournee/" + url.PathEscape(societe) + "/" + url.PathEscape(driver) + "/" + url.PathEscape(date)
	return c.send(c.http.R().SetContext(ctx), http.MethodDelete, path)
}

func (c *Client) send(req *resty.Request, method, path string) error {
	var problem httputil.ProblemDetail
	resp, err := req.SetError(&problem).Execute(method, path)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if resp.IsError() {
		detail := problem.Detail
		if detail == "" {
			detail = problem.Title
		}
		return &APIError{Status: resp.StatusCode(), Detail: detail}
	}
	return nil
}
