// Package ui はroute-adminのTUI層を提供する。
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// App はページとステータスバーを持つTUIアプリケーション。
type App struct {
	app       *tview.Application
	pages     *tview.Pages
	statusBar *StatusBar
	layout    *tview.Flex
}

// NewApp は新しいAppを生成する。headerはゲートウェイURL等の常時表示行。
func NewApp(header string) *App {
	app := tview.NewApplication()
	pages := tview.NewPages()
	statusBar := NewStatusBar()
	statusBar.SetApp(app)

	title := tview.NewTextView().
		SetDynamicColors(true).
		SetText(" [::b]route-admin[::-]  " + header)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(title, 1, 0, false).
		AddItem(pages, 0, 1, true).
		AddItem(statusBar.view, 1, 0, false)

	return &App{
		app:       app,
		pages:     pages,
		statusBar: statusBar,
		layout:    layout,
	}
}

// Run はアプリケーションを実行する。Stopが呼ばれるまでブロックする。
func (a *App) Run() error {
	return a.app.SetRoot(a.layout, true).EnableMouse(false).Run()
}

// Stop はアプリケーションを停止する。
func (a *App) Stop() {
	a.app.Stop()
}

// StatusBar はステータスバーを返す。
func (a *App) StatusBar() *StatusBar {
	return a.statusBar
}

// ShowScreen は画面をページとして登録し、前面に切り替える。同名のページは置き換える。
func (a *App) ShowScreen(name string, p tview.Primitive) {
	a.pages.RemovePage(name)
	a.pages.AddAndSwitchToPage(name, p, true)
	a.app.SetFocus(p)
}

// SwitchTo は登録済みのページに切り替える。
func (a *App) SwitchTo(name string) {
	a.pages.SwitchToPage(name)
}

// ShowModal は現在の画面の上にモーダルを重ねる。
func (a *App) ShowModal(name string, p tview.Primitive) {
	a.pages.RemovePage(name)
	a.pages.AddPage(name, p, true, true)
	a.app.SetFocus(p)
}

// CloseModal はモーダルを閉じ、下の画面にフォーカスを戻す。
func (a *App) CloseModal(name string) {
	a.pages.RemovePage(name)
	if _, front := a.pages.GetFrontPage(); front != nil {
		a.app.SetFocus(front)
	}
}

// HasPage は指定ページが登録済みかどうかを返す。
func (a *App) HasPage(name string) bool {
	return a.pages.HasPage(name)
}

// QueueUpdateDraw はUIの更新をイベントループに投入する。別goroutineから呼び出す。
func (a *App) QueueUpdateDraw(f func()) {
	a.app.QueueUpdateDraw(f)
}

// SetInputCapture はグローバルなキー入力ハンドラを設定する。
func (a *App) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	a.app.SetInputCapture(capture)
}

// Centered はpを指定サイズで画面中央に配置する。
func Centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
