// Package server はroute-gatewayのHTTP APIサーバーを提供する。
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/config"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/httputil"
	"github.com/gin-gonic/gin"
)

// Server はGinエンジンとhttp.Serverを束ねる。
type Server struct {
	engine *gin.Engine
	http   *http.Server
}

// New はミドルウェアとルーティングを設定したServerを生成する。
// 未定義のパス・メソッドはProblem Detail形式の404/405を返す。
func New(cfg *config.Config, h Handlers) *Server {
	gin.SetMode(cfg.GinMode)

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	if err := engine.SetTrustedProxies(nil); err != nil {
		slog.Warn("failed to disable trusted proxies", "event_id", "SERVER_CONFIG_WARN", "error", err)
	}
	engine.Use(TraceIDMiddleware(), LoggingMiddleware(), RecoveryMiddleware())
	engine.NoRoute(func(c *gin.Context) {
		httputil.WriteError(c, httputil.NotFound("No route for "+c.Request.Method+" "+c.Request.URL.Path))
	})
	engine.NoMethod(func(c *gin.Context) {
		httputil.WriteError(c, httputil.NewProblemDetail(http.StatusMethodNotAllowed, "", "Method "+c.Request.Method+" not allowed"))
	})

	SetupRouter(engine, h)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           engine,
			ReadHeaderTimeout: config.HTTPReadHeaderTimeout,
			IdleTimeout:       config.HTTPIdleTimeout,
		},
	}
}

// Handler はルーティング済みのhttp.Handlerを返す。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run はListenAddrで待ち受ける。Shutdownによる停止時はnilを返す。
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve はlnで待ち受ける。Shutdownによる停止時はnilを返す。
func (s *Server) Serve(ln net.Listener) error {
	slog.Info("starting server", "event_id", "SERVER_START", "addr", ln.Addr().String())
	if err := s.http.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown は処理中のリクエスト完了を待ってサーバーを停止する。
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down server", "event_id", "SERVER_STOP")
	return s.http.Shutdown(ctx)
}
