// Package format は画面表示用の整形関数を提供する。
package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Count は件数を桁区切り付きで整形する。例: 12345 -> "12,345"
func Count(n int64) string {
	return printer.Sprintf("%d", n)
}

// Percent は0〜1の比率をパーセント表記に整形する。サンプルなしの場合は "-"。
func Percent(rate float64, samples int64) string {
	if samples == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", rate*100)
}

// Latency はミリ秒のレイテンシを整形する。1秒以上は秒表記にする。
func Latency(ms float64) string {
	if ms <= 0 {
		return "-"
	}
	if ms >= 1000 {
		return fmt.Sprintf("%.2fs", ms/1000)
	}
	return fmt.Sprintf("%.0fms", ms)
}

// DateTime は時刻をローカルタイムゾーンの "2006-01-02 15:04:05" 形式に整形する。ゼロ値は "-"。
func DateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

// Age はnowからの経過時間を短い形式で返す。例: 3661s -> "1h1m"
func Age(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	default:
		return fmt.Sprintf("%dd", int(d.Hours())/24)
	}
}

// Truncate は文字列を指定した文字数に切り詰め、切り詰めた場合は末尾に "..." を付加する。
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		if maxLen <= 0 {
			return ""
		}
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
