// Package metrics は移行ストラテジーの集計値を時系列DBへ送信する。
package metrics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/config"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/migration"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// 測定名
const (
	MeasurementStrategy = "migration_strategy"
	MeasurementState    = "migration_state"
)

// Reporter はスナップショットを外部へ送信する。
type Reporter interface {
	Report(ctx context.Context, snap migration.Snapshot) error
}

// InfluxSink はInfluxDB v2へのブロッキング書き込みを行う。
type InfluxSink struct {
	client influxdb2.Client
	writer api.WriteAPIBlocking
}

// NewInfluxSink は新しいInfluxSinkを生成する。
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClient(url, token)
	return &InfluxSink{
		client: client,
		writer: client.WriteAPIBlocking(org, bucket),
	}
}

// NewInfluxSinkFromConfig は設定からInfluxSinkを生成する。無効な場合はnilを返す。
func NewInfluxSinkFromConfig(cfg *config.Config) *InfluxSink {
	if !cfg.InfluxEnabled() {
		return nil
	}
	return NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
}

// Close はクライアントを閉じる。
func (s *InfluxSink) Close() {
	if s != nil && s.client != nil {
		s.client.Close()
	}
}

// Report はスナップショットをポイント列として書き込む。
func (s *InfluxSink) Report(ctx context.Context, snap migration.Snapshot) error {
	points := BuildPoints(snap)
	if err := s.writer.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("influx write: %w", err)
	}
	slog.Debug("移行メトリクス送信",
		logging.WithEventID("METRICS_REPORTED"),
		logging.WithStrategy(snap.Current.String()),
		slog.Int("points", len(points)),
	)
	return nil
}

// BuildPoints はスナップショットを状態1点とストラテジー毎の集計点に変換する。
func BuildPoints(snap migration.Snapshot) []*write.Point {
	points := make([]*write.Point, 0, len(snap.Metrics)+1)
	points = append(points, write.NewPoint(MeasurementState,
		map[string]string{"strategy": snap.Current.String()},
		map[string]interface{}{
			"mobile_percentage": snap.MobilePercentage,
			"auto_progression":  snap.AutoProgression,
		},
		snap.At,
	))

	for _, st := range migration.Strategies() {
		m, ok := snap.Metrics[st]
		if !ok {
			continue
		}
		current := "false"
		if st == snap.Current {
			current = "true"
		}
		points = append(points, write.NewPoint(MeasurementStrategy,
			map[string]string{"strategy": st.String(), "current": current},
			map[string]interface{}{
				"total":           m.Total,
				"successful":      m.Successful,
				"failed":          m.Failed,
				"web_requests":    m.WebRequests,
				"mobile_requests": m.MobileRequests,
				"avg_latency_ms":  m.AvgLatencyMs,
				"success_rate":    m.SuccessRate(),
				"failure_rate":    m.FailureRate(),
			},
			snap.At,
		))
	}
	return points
}
