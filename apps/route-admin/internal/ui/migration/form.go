package migration

import (
	"errors"
	"strings"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-admin/internal/api"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// ErrSameStrategy は現在と同じストラテジーが選択された場合のエラー。
var ErrSameStrategy = errors.New("selected strategy is already current")

// ErrNotAdjacent は隣接しないストラテジーが選択された場合のエラー。
var ErrNotAdjacent = errors.New("only adjacent strategies can be selected")

// ValidateChange は current から to への手動変更が可能かを判定する。
func ValidateChange(current, to string) error {
	from, dst := rank(current), rank(to)
	if dst < 0 {
		return errors.New("unknown strategy: " + to)
	}
	if from == dst {
		return ErrSameStrategy
	}
	if from >= 0 && from-dst != 1 && dst-from != 1 {
		return ErrNotAdjacent
	}
	return nil
}

// StrategyForm はストラテジー変更フォーム。
type StrategyForm struct {
	form     *tview.Form
	current  string
	selected string
	onSubmit func(strategy, reason string)
	onCancel func()
	onError  func(err error)
}

// NewStrategyForm は新しいStrategyFormを生成する。初期選択はcurrentの次のストラテジー。
func NewStrategyForm(current string) *StrategyForm {
	f := &StrategyForm{
		form:    tview.NewForm(),
		current: current,
	}

	initial := rank(current)
	if next, ok := api.NextStrategy(current); ok {
		initial = rank(next)
	}
	if initial < 0 {
		initial = 0
	}
	f.selected = api.Strategies[initial]

	f.form.AddDropDown("Strategy", api.Strategies, initial, func(option string, _ int) {
		f.selected = option
	})
	f.form.AddInputField("Reason", "", 40, nil, nil)
	f.form.AddButton("Apply", f.submit)
	f.form.AddButton("Cancel", func() { call(f.onCancel) })

	f.form.SetBorder(true).
		SetTitle(" Change Strategy (current: " + current + ") ").
		SetTitleAlign(tview.AlignCenter).
		SetBorderColor(tcell.ColorWhite)

	f.form.SetCancelFunc(func() { call(f.onCancel) })
	return f
}

// Primitive はフォームのルート要素を返す。
func (f *StrategyForm) Primitive() tview.Primitive {
	return f.form
}

// SetOnSubmit は適用時のコールバックを設定する。
func (f *StrategyForm) SetOnSubmit(handler func(strategy, reason string)) { f.onSubmit = handler }

// SetOnCancel はキャンセル時のコールバックを設定する。
func (f *StrategyForm) SetOnCancel(handler func()) { f.onCancel = handler }

// SetOnError は入力検証エラー時のコールバックを設定する。
func (f *StrategyForm) SetOnError(handler func(err error)) { f.onError = handler }

// Values は選択中のストラテジーと入力された理由を返す。
func (f *StrategyForm) Values() (string, string) {
	reason := f.form.GetFormItemByLabel("Reason").(*tview.InputField).GetText()
	return f.selected, strings.TrimSpace(reason)
}

func (f *StrategyForm) submit() {
	strategy, reason := f.Values()
	if err := ValidateChange(f.current, strategy); err != nil {
		if f.onError != nil {
			f.onError(err)
		}
		return
	}
	if f.onSubmit != nil {
		f.onSubmit(strategy, reason)
	}
}
