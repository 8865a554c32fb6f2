package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// NewConfirmDialog は Yes/No の確認モーダルを生成する。Yes以外は全てonCancelを呼ぶ。
func NewConfirmDialog(title, message string, onConfirm, onCancel func()) *tview.Modal {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"Yes", "No"}).
		SetDoneFunc(func(_ int, buttonLabel string) {
			if buttonLabel == "Yes" {
				if onConfirm != nil {
					onConfirm()
				}
				return
			}
			if onCancel != nil {
				onCancel()
			}
		})

	modal.SetTitle(" " + title + " ").
		SetBorder(true).
		SetBorderColor(tcell.ColorYellow)
	return modal
}

// NewErrorDialog はエラーメッセージのモーダルを生成する。
func NewErrorDialog(title, message string, onClose func()) *tview.Modal {
	modal := tview.NewModal().
		SetText("✗ ERROR\n\n" + message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) {
			if onClose != nil {
				onClose()
			}
		})

	modal.SetTitle(" " + title + " ").
		SetBorder(true).
		SetBorderColor(tcell.ColorRed)
	return modal
}

// NewStartupErrorDialog はゲートウェイ接続失敗時のモーダルを生成する。
func NewStartupErrorDialog(gatewayURL, message string, onRetry, onExit func()) *tview.Modal {
	modal := tview.NewModal().
		SetText("Failed to reach route-gateway:\n\n" + message +
			"\n\nPlease check:\n- route-gateway is running at " + gatewayURL +
			"\n- GATEWAY_URL environment variable is set correctly").
		AddButtons([]string{"Retry", "Exit"}).
		SetDoneFunc(func(_ int, buttonLabel string) {
			if buttonLabel == "Retry" {
				if onRetry != nil {
					onRetry()
				}
				return
			}
			if onExit != nil {
				onExit()
			}
		})

	modal.SetTitle(" Connection Error ").
		SetBorder(true).
		SetBorderColor(tcell.ColorRed)
	modal.SetBackgroundColor(tcell.ColorBlack)
	return modal
}
