// Package cache はキャッシュ無効化画面を提供する。
package cache

import (
	"errors"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Request はキャッシュ無効化要求。Dateが空の場合はドライバーの全キャッシュを対象とする。
type Request struct {
	Societe string
	Driver  string
	Date    string
}

// AllDates はドライバーの全キャッシュが対象かどうかを返す。
func (r Request) AllDates() bool {
	return r.Date == ""
}

// ParseRequest はフォーム入力を検証してRequestを生成する。
func ParseRequest(societe, driver, date string) (Request, error) {
	r := Request{
		Societe: strings.TrimSpace(societe),
		Driver:  strings.TrimSpace(driver),
		Date:    strings.TrimSpace(date),
	}
	if r.Societe == "" {
		return r, errors.New("societe is required")
	}
	if r.Driver == "" {
		return r, errors.New("driver is required")
	}
	if strings.ContainsAny(r.Societe+r.Driver, "/:") {
		return r, errors.New("societe and driver must not contain '/' or ':'")
	}
	if r.Date != "" {
		if _, err := time.Parse(time.DateOnly, r.Date); err != nil {
			return r, errors.New("date must be YYYY-MM-DD")
		}
	}
	return r, nil
}

const (
	labelSociete = "Societe"
	labelDriver  = "Driver"
	labelDate    = "Date (optional)"
)

// Form はキャッシュ無効化フォーム。
type Form struct {
	form     *tview.Form
	onSubmit func(Request)
	onCancel func()
	onError  func(error)
}

// NewForm は新しいFormを生成する。defaultSocieteはSociete欄の初期値。
func NewForm(defaultSociete string) *Form {
	f := &Form{form: tview.NewForm()}

	f.form.AddInputField(labelSociete, defaultSociete, 20, nil, nil)
	f.form.AddInputField(labelDriver, "", 30, nil, nil)
	f.form.AddInputField(labelDate, "", 12, func(text string, last rune) bool {
		return (last >= '0' && last <= '9') || last == '-'
	}, nil)
	f.form.AddButton("Invalidate", f.submit)
	f.form.AddButton("Cancel", func() {
		if f.onCancel != nil {
			f.onCancel()
		}
	})

	f.form.SetBorder(true).
		SetTitle(" Cache Invalidation ").
		SetTitleAlign(tview.AlignCenter).
		SetBorderColor(tcell.ColorWhite)

	f.form.SetCancelFunc(func() {
		if f.onCancel != nil {
			f.onCancel()
		}
	})
	return f
}

// Primitive はフォームのルート要素を返す。
func (f *Form) Primitive() tview.Primitive {
	return f.form
}

// SetOnSubmit は検証済み要求の送信時のコールバックを設定する。
func (f *Form) SetOnSubmit(handler func(Request)) { f.onSubmit = handler }

// SetOnCancel はキャンセル時のコールバックを設定する。
func (f *Form) SetOnCancel(handler func()) { f.onCancel = handler }

// SetOnError は入力検証エラー時のコールバックを設定する。
func (f *Form) SetOnError(handler func(error)) { f.onError = handler }

// SetValues はフォームの入力値を設定する。
func (f *Form) SetValues(societe, driver, date string) {
	f.input(labelSociete).SetText(societe)
	f.input(labelDriver).SetText(driver)
	f.input(labelDate).SetText(date)
}

func (f *Form) input(label string) *tview.InputField {
	return f.form.GetFormItemByLabel(label).(*tview.InputField)
}

func (f *Form) submit() {
	req, err := ParseRequest(f.input(labelSociete).GetText(), f.input(labelDriver).GetText(), f.input(labelDate).GetText())
	if err != nil {
		if f.onError != nil {
			f.onError(err)
		}
		return
	}
	if f.onSubmit != nil {
		f.onSubmit(req)
	}
}
