// Package migration は移行状態の参照・操作画面を提供する。
package migration

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-admin/internal/api"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-admin/internal/format"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-admin/internal/ui"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// StatusSource は移行状態の取得元。
type StatusSource interface {
	Status(ctx context.Context, history int) (*api.Status, error)
}

var metricsHeader = []string{"", "Strategy", "Mobile%", "Total", "Success", "Failed", "Web", "Mobile", "Avg latency", "Updated"}

var historyHeader = []string{"At", "From", "To", "Reason", "Success (from)"}

// StatusScreen は移行状態画面。サマリー、ストラテジー別集計、変更履歴を表示する。
type StatusScreen struct {
	flex         *tview.Flex
	summary      *tview.TextView
	metrics      *tview.Table
	history      *tview.Table
	app          *ui.App
	source       StatusSource
	historyLimit int
	timeout      time.Duration
	status       *api.Status
	now          func() time.Time

	onBack       func()
	onProgress   func()
	onRollback   func()
	onToggleAuto func()
	onChange     func()
}

// NewStatusScreen は新しいStatusScreenを生成する。
func NewStatusScreen(app *ui.App, source StatusSource, historyLimit int, timeout time.Duration) *StatusScreen {
	summary := tview.NewTextView().SetDynamicColors(true)
	summary.SetTitle(" Migration ").
		SetTitleAlign(tview.AlignLeft).
		SetBorder(true).
		SetBorderColor(tcell.ColorBlue)

	metrics := tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	metrics.SetTitle(" Strategy Metrics ").
		SetBorder(true).
		SetBorderColor(tcell.ColorBlue)

	history := tview.NewTable().SetFixed(1, 0)
	history.SetTitle(" Change History ").
		SetBorder(true).
		SetBorderColor(tcell.ColorBlue)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(summary, 6, 0, false).
		AddItem(metrics, len(api.Strategies)+3, 0, true).
		AddItem(history, 0, 1, false)

	s := &StatusScreen{
		flex:         flex,
		summary:      summary,
		metrics:      metrics,
		history:      history,
		app:          app,
		source:       source,
		historyLimit: historyLimit,
		timeout:      timeout,
		now:          time.Now,
	}
	s.setupKeyBindings()
	return s
}

// Primitive は画面のルート要素を返す。
func (s *StatusScreen) Primitive() tview.Primitive {
	return s.flex
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *StatusScreen) SetOnBack(handler func()) { s.onBack = handler }

// SetOnProgress は次ストラテジーへの進行要求時のコールバックを設定する。
func (s *StatusScreen) SetOnProgress(handler func()) { s.onProgress = handler }

// SetOnRollback は巻き戻し要求時のコールバックを設定する。
func (s *StatusScreen) SetOnRollback(handler func()) { s.onRollback = handler }

// SetOnToggleAuto は自動進行切り替え要求時のコールバックを設定する。
func (s *StatusScreen) SetOnToggleAuto(handler func()) { s.onToggleAuto = handler }

// SetOnChange はストラテジー選択フォーム表示要求時のコールバックを設定する。
func (s *StatusScreen) SetOnChange(handler func()) { s.onChange = handler }

// Current は最後に読み込んだ移行状態を返す。未読み込みの場合はnil。
func (s *StatusScreen) Current() *api.Status {
	return s.status
}

// Load は移行状態を取得して描画する。UIイベントループ外からは Reload を使う。
func (s *StatusScreen) Load(ctx context.Context) error {
	status, err := s.source.Status(ctx, s.historyLimit)
	if err != nil {
		s.summary.SetText("[red]Error loading migration status: " + tview.Escape(err.Error()) + "[-]")
		return err
	}
	s.Apply(status)
	return nil
}

// Reload は別goroutineで移行状態を取得し、イベントループ上で描画する。
func (s *StatusScreen) Reload() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		status, err := s.source.Status(ctx, s.historyLimit)
		s.app.QueueUpdateDraw(func() {
			if err != nil {
				s.app.StatusBar().ShowError("Failed to load migration status: " + err.Error())
				return
			}
			s.Apply(status)
		})
	}()
}

// Apply は取得済みの移行状態で画面を更新する。
func (s *StatusScreen) Apply(status *api.Status) {
	s.status = status
	s.summary.SetText(summaryText(status, s.now()))
	fillMetrics(s.metrics, status, s.now())
	fillHistory(s.history, status.History)
}

func summaryText(status *api.Status, now time.Time) string {
	auto := "[red]off[-]"
	if status.AutoProgression {
		auto = "[green]on[-]"
	}
	next := "-"
	if n, ok := api.NextStrategy(status.Current); ok {
		next = n
	}
	th := status.Thresholds
	return fmt.Sprintf(
		"  [cyan]Current:[-] [yellow::b]%s[-::-] (%d%% mobile)   [cyan]Next:[-] %s\n"+
			"  [cyan]Auto progression:[-] %s\n"+
			"  [cyan]Thresholds:[-] progress >= %s, rollback < %s, min samples %s\n"+
			"  [gray]Snapshot: %s (%s ago)[-]",
		status.Current, status.MobilePercentage, next,
		auto,
		format.Percent(th.Progression, 1), format.Percent(th.Rollback, 1), format.Count(th.MinSamples),
		format.DateTime(status.At), format.Age(status.At, now),
	)
}

func fillMetrics(table *tview.Table, status *api.Status, now time.Time) {
	table.Clear()
	for col, h := range metricsHeader {
		table.SetCell(0, col, headerCell(h))
	}

	for i, name := range api.Strategies {
		row := i + 1
		m := status.Metrics[name]
		marker := ""
		color := tcell.ColorWhite
		if name == status.Current {
			marker = "▶"
			color = tcell.ColorYellow
		}
		values := []string{
			marker,
			name,
			strconv.Itoa(api.MobilePercentages[i]) + "%",
			format.Count(m.Total),
			format.Percent(m.SuccessRate(), m.Total),
			format.Count(m.Failed),
			format.Count(m.WebRequests),
			format.Count(m.MobileRequests),
			format.Latency(m.AvgLatencyMs),
			format.Age(m.LastUpdate, now),
		}
		for col, v := range values {
			table.SetCell(row, col, tview.NewTableCell(v).SetTextColor(color))
		}
	}
}

func fillHistory(table *tview.Table, history []api.Change) {
	table.Clear()
	for col, h := range historyHeader {
		table.SetCell(0, col, headerCell(h))
	}
	if len(history) == 0 {
		table.SetCell(1, 0, tview.NewTableCell("No strategy changes recorded").SetTextColor(tcell.ColorGray))
		return
	}
	for i, c := range history {
		row := i + 1
		color := tcell.ColorGreen
		if rank(c.To) < rank(c.From) {
			color = tcell.ColorRed
		}
		table.SetCell(row, 0, tview.NewTableCell(format.DateTime(c.At)))
		table.SetCell(row, 1, tview.NewTableCell(c.From))
		table.SetCell(row, 2, tview.NewTableCell(c.To).SetTextColor(color))
		table.SetCell(row, 3, tview.NewTableCell(format.Truncate(c.Reason, 40)))
		table.SetCell(row, 4, tview.NewTableCell(format.Percent(c.Metrics.SuccessRate(), c.Metrics.Total)))
	}
}

// rank はストラテジーの移行順位を返す。未知の名前は-1。
func rank(name string) int {
	for i, s := range api.Strategies {
		if s == name {
			return i
		}
	}
	return -1
}

func headerCell(text string) *tview.TableCell {
	return tview.NewTableCell(text).
		SetTextColor(tcell.ColorYellow).
		SetAttributes(tcell.AttrBold).
		SetSelectable(false)
}

func (s *StatusScreen) setupKeyBindings() {
	s.metrics.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			call(s.onBack)
			return nil
		}
		switch event.Rune() {
		case ui.RuneBack:
			call(s.onBack)
		case ui.RuneRefresh:
			s.Reload()
		case ui.RuneProgress:
			call(s.onProgress)
		case ui.RuneRollback:
			call(s.onRollback)
		case ui.RuneAuto:
			call(s.onToggleAuto)
		case ui.RuneStrategy:
			call(s.onChange)
		default:
			return event
		}
		return nil
	})
}

func call(f func()) {
	if f != nil {
		f()
	}
}
