package ui

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// StatusType はステータスメッセージの種類を表す。
type StatusType int

const (
	// StatusInfo は情報メッセージ
	StatusInfo StatusType = iota
	// StatusSuccess は成功メッセージ
	StatusSuccess
	// StatusError はエラーメッセージ
	StatusError
)

// messageDuration はメッセージ表示後にデフォルト表示へ戻るまでの時間。
const messageDuration = 5 * time.Second

const defaultStatusText = " F1:Help | q:Back | Ctrl+Q:Exit"

// StatusBar は画面下部のステータスバー。
type StatusBar struct {
	view       *tview.TextView
	app        *tview.Application
	mu         sync.Mutex
	clearTimer *time.Timer
}

// NewStatusBar は新しいStatusBarを生成する。
func NewStatusBar() *StatusBar {
	view := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft).
		SetText(defaultStatusText)

	view.SetBackgroundColor(tcell.ColorDarkBlue)
	view.SetTextColor(tcell.ColorWhite)

	return &StatusBar{view: view}
}

// SetApp はタイマーからの再描画に使うtview.Applicationを設定する。
func (s *StatusBar) SetApp(app *tview.Application) {
	s.app = app
}

// Text は現在の表示テキストを返す。
func (s *StatusBar) Text() string {
	return s.view.GetText(false)
}

// Show はメッセージを表示し、一定時間後にデフォルト表示へ戻す。
func (s *StatusBar) Show(statusType StatusType, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clearTimer != nil {
		s.clearTimer.Stop()
	}

	switch statusType {
	case StatusSuccess:
		s.view.SetText("[green::b] ✓ " + message + " [-::-]")
	case StatusError:
		s.view.SetText("[red::b] ✗ " + message + " [-::-]")
	default:
		s.view.SetText("[cyan] ℹ " + message + " [-]")
	}

	s.clearTimer = time.AfterFunc(messageDuration, func() {
		if s.app != nil {
			s.app.QueueUpdateDraw(func() {
				s.view.SetText(defaultStatusText)
			})
		}
	})
}

// ShowInfo は情報メッセージを表示する。
func (s *StatusBar) ShowInfo(message string) {
	s.Show(StatusInfo, message)
}

// ShowSuccess は成功メッセージを表示する。
func (s *StatusBar) ShowSuccess(message string) {
	s.Show(StatusSuccess, message)
}

// ShowError はエラーメッセージを表示する。
func (s *StatusBar) ShowError(message string) {
	s.Show(StatusError, message)
}
