// Package worker はキャッシュ保守・移行同期・メトリクス送信の定期実行を提供する。
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
	"golang.org/x/sync/errgroup"
)

// Task は一定間隔で実行する処理。
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler は登録されたTaskをそれぞれのゴルーチンで周期実行する。
type Scheduler struct {
	tasks []Task
}

// NewScheduler は新しいSchedulerを生成する。間隔0以下またはRun未設定のTaskは無視する。
func NewScheduler(tasks ...Task) *Scheduler {
	s := &Scheduler{}
	for _, t := range tasks {
		if t.Interval <= 0 || t.Run == nil {
			slog.Info("定期タスク無効",
				logging.WithEventID("WORKER_DISABLED"),
				slog.String("task", t.Name),
			)
			continue
		}
		s.tasks = append(s.tasks, t)
	}
	return s
}

// Len は有効なTask数を返す。
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Run はctxがキャンセルされるまで全Taskを実行する。
// Task個別の失敗はログに記録し、次の周期で再実行する。
func (s *Scheduler) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, t := range s.tasks {
		g.Go(func() error {
			loop(ctx, t)
			return nil
		})
	}
	return g.Wait()
}

func loop(ctx context.Context, t Task) {
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	slog.Debug("定期タスク開始",
		logging.WithEventID("WORKER_START"),
		slog.String("task", t.Name),
		slog.Duration("interval", t.Interval),
	)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			if err := t.Run(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Warn("定期タスク失敗",
					logging.WithEventID("WORKER_TASK_FAILED"),
					slog.String("task", t.Name),
					logging.WithLatency(time.Since(start).Milliseconds()),
					logging.WithError(err),
				)
			}
		}
	}
}
