package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// キーバインド定義
const (
	KeyHelp = tcell.KeyF1
	KeyQuit = tcell.KeyCtrlQ

	RuneBack     = 'q'
	RuneRefresh  = 'r'
	RuneProgress = '+'
	RuneRollback = '-'
	RuneAuto     = 'a'
	RuneStrategy = 's'
)

// KeyBinding はキーバインドの情報を表す。Keyが0の場合はRuneを使う。
type KeyBinding struct {
	Key         tcell.Key
	Rune        rune
	Description string
}

// HelpSection はヘルプのセクションを表す。
type HelpSection struct {
	Title    string
	Bindings []KeyBinding
}

// HelpSections はヘルプに表示するキーバインド一覧を返す。
func HelpSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Migration Status",
			Bindings: []KeyBinding{
				{0, RuneRefresh, "Refresh"},
				{0, RuneProgress, "Progress to next strategy"},
				{0, RuneRollback, "Roll back to previous strategy"},
				{0, RuneStrategy, "Change strategy"},
				{0, RuneAuto, "Toggle auto progression"},
			},
		},
		{
			Title: "Global",
			Bindings: []KeyBinding{
				{KeyHelp, 0, "Show this help"},
				{tcell.KeyEsc, 0, "Back/Cancel"},
				{0, RuneBack, "Back"},
				{KeyQuit, 0, "Exit application"},
			},
		},
	}
}

// FormatHelp はヘルプセクションをtviewのカラータグ付き文字列に整形する。
func FormatHelp(sections []HelpSection) string {
	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("[::b]" + section.Title + "[::-]\n")
		for _, kb := range section.Bindings {
			b.WriteString("  " + tview.Escape(keyLabel(kb)) + "  " + kb.Description + "\n")
		}
	}
	return b.String()
}

// NewHelpModal はヘルプモーダルを生成する。
func NewHelpModal(onClose func()) *tview.Modal {
	modal := tview.NewModal().
		SetText(FormatHelp(HelpSections())).
		AddButtons([]string{"Close"}).
		SetDoneFunc(func(int, string) {
			if onClose != nil {
				onClose()
			}
		})

	modal.SetTitle(" Help ").
		SetBorder(true).
		SetBorderColor(tcell.ColorTeal)
	return modal
}

func keyLabel(kb KeyBinding) string {
	if kb.Key == 0 {
		return string(kb.Rune)
	}
	switch kb.Key {
	case tcell.KeyF1:
		return "F1"
	case tcell.KeyEsc:
		return "Esc"
	case tcell.KeyCtrlQ:
		return "Ctrl+Q"
	default:
		return "?"
	}
}
