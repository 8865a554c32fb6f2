// Package main はRoute Gatewayのエントリーポイント。
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/cache"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/carrier"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/config"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/device"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/flow"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/handler"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/headers"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/integration"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/metrics"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/migration"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/server"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/store"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/usecase"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/worker"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
)

func main() {
	// 1. 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化
	initLogger(cfg)

	initial, err := migration.ParseStrategy(cfg.MigrationInitialStrategy)
	if err != nil {
		slog.Error("invalid MIGRATION_INITIAL_STRATEGY", "error", err)
		os.Exit(1)
	}

	slog.Info("starting route-gateway",
		"listen_addr", cfg.ListenAddr,
		"log_level", cfg.LogLevel,
		"initial_strategy", initial.String(),
		"cache_camouflage", cfg.CacheCamouflageEnabled,
		"metrics_sink", cfg.InfluxEnabled(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Valkey接続
	vc, err := store.NewValkeyClient(cfg)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer vc.Close()

	// 4. 端末情報
	var fixed *model.DeviceIdentity
	if cfg.DeviceProfilePath != "" {
		fixed, err = device.LoadProfile(cfg.DeviceProfilePath)
		if err != nil {
			slog.Error("failed to load device profile", "error", err)
			os.Exit(1)
		}
	}
	devices := device.NewRegistry(vc, nil, fixed)

	// 5. キャリア連携（連携方式ごとにクライアントとCircuit Breakerを分ける）
	builder := headers.NewBuilder(headers.Options{
		Origin:       cfg.CarrierOrigin,
		Referer:      cfg.CarrierReferer,
		ManifestHost: cfg.CarrierManifestHost,
	})
	app := cfg.App()
	mobileClient := carrier.NewClient(carrier.OptionsFromConfig("carrier-mobile", carrier.PathTourneeMobile, cfg), builder, app)
	webClient := carrier.NewClient(carrier.OptionsFromConfig("carrier-web", carrier.PathTourneeWeb, cfg), builder, app)
	runner := flow.NewRunner()
	integrations := integration.NewRegistry(
		integration.NewMobile(mobileClient, devices, runner),
		integration.NewWeb(webClient, devices, runner),
	)

	// 6. キャッシュ
	c := cache.New(store.NewKVStore(vc), cache.Options{
		ManifestTTL: cfg.CacheTourneeTTL,
		Spread:      cfg.CacheJitterSpread,
		Floor:       cfg.CacheTTLFloor,
		Camouflage:  cfg.CacheCamouflageEnabled,
	}, nil)

	// 7. 移行制御
	ctrl := migration.NewController(migration.Options{
		Initial:         initial,
		AutoProgression: cfg.MigrationAutoProgression,
		Thresholds: migration.Thresholds{
			Progression: cfg.MigrationProgressionThreshold,
			Rollback:    cfg.MigrationRollbackThreshold,
			MinSamples:  cfg.MigrationMinSamples,
		},
	}, migration.NewValkeyStateStore(vc))
	if _, err := ctrl.Sync(ctx); err != nil {
		slog.Warn("initial migration sync failed", "error", err)
	}

	// 8. ユースケース
	fields := logging.NewCommonFields(logging.NewMasker(cfg.LogMaskIdentifiers))
	uc := usecase.NewTourneeUseCase(ctrl, integrations, c.Manifests, c.Tokens, fields, usecase.Options{
		TokenLifetimeHours: cfg.TokenLifetimeHours,
		Retry:              usecase.NewRetryPolicy(cfg.RetryMaxAttempts, cfg.RetryBaseDelay, cfg.RetryMaxDelay),
	})

	// 9. 定期タスク
	var reporter metrics.Reporter
	if sink := metrics.NewInfluxSinkFromConfig(cfg); sink != nil {
		defer sink.Close()
		reporter = sink
	}
	decoyInterval := cfg.DecoyInterval
	if !cfg.CacheCamouflageEnabled {
		decoyInterval = 0
	}
	sched := worker.NewScheduler(
		worker.DecoyTask(c.Decoys, cfg.DecoyCount, decoyInterval),
		worker.CleanupTask(c.Invalidator, cfg.CleanupInterval),
		worker.SyncTask(ctrl, cfg.MigrationSyncInterval),
		worker.ReportTask(ctrl, reporter, cfg.MetricsReportInterval),
	)
	slog.Info("background workers registered", "tasks", sched.Len())
	workersDone := make(chan struct{})
	go func() {
		defer close(workersDone)
		sched.Run(ctx)
	}()

	// 10. サーバー起動
	srv := server.New(cfg, server.Handlers{
		Health:    handler.NewHealthHandler(vc),
		Tournee:   handler.NewTourneeHandler(uc, fields),
		Migration: handler.NewMigrationHandler(ctrl),
		Cache:     handler.NewCacheHandler(c.Manifests, c.Invalidator, fields),
	})

	go func() {
		if err := srv.Run(); err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// 11. シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	cancel()
	select {
	case <-workersDone:
	case <-time.After(config.ShutdownTimeout):
		slog.Warn("background workers did not stop in time")
	}

	slog.Info("server stopped")
}

// initLogger はロガーを初期化する。
func initLogger(cfg *config.Config) {
	level := slog.LevelInfo
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	h := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(h).With("app", "route-gateway")
	slog.SetDefault(logger)
}
