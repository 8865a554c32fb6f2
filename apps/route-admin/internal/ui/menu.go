package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuItem はメニュー項目を表す。
type MenuItem struct {
	Label       string
	Description string
	Key         rune
	Action      func()
}

// NewMenu はメニュー項目からtview.Listを生成する。Esc/qでonQuitを呼ぶ。
func NewMenu(title string, items []MenuItem, onQuit func()) *tview.List {
	list := tview.NewList().ShowSecondaryText(true)
	for _, item := range items {
		list.AddItem(item.Label, item.Description, item.Key, item.Action)
	}

	list.SetTitle(" " + title + " ").
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(tcell.ColorBlue)

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || event.Rune() == RuneBack {
			if onQuit != nil {
				onQuit()
			}
			return nil
		}
		return event
	})
	return list
}

// MainMenuItems はメインメニューの項目を返す。Actionは呼び出し側で設定する。
func MainMenuItems() []MenuItem {
	return []MenuItem{
		{Label: "Migration Status", Description: "Current strategy, per-strategy metrics and change history", Key: '1'},
		{Label: "Change Strategy", Description: "Move to an adjacent migration strategy", Key: '2'},
		{Label: "Cache Invalidation", Description: "Evict cached tokens and manifests for a driver", Key: '3'},
		{Label: "Exit", Description: "Exit the application", Key: 'x'},
	}
}
