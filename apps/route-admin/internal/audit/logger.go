// Package audit は運用操作の監査ログを提供する。
package audit

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
)

// Operation は監査ログの操作種別を表す。
type Operation string

const (
	// OpChangeStrategy はストラテジー変更
	OpChangeStrategy Operation = "change_strategy"
	// OpRollback は巻き戻し
	OpRollback Operation = "rollback"
	// OpAutoProgression は自動進行の切り替え
	OpAutoProgression Operation = "auto_progression"
	// OpInvalidateDriver はドライバーキャッシュの全削除
	OpInvalidateDriver Operation = "invalidate_driver"
	// OpDeleteManifest はマニフェストキャッシュの削除
	OpDeleteManifest Operation = "delete_manifest"
)

// TargetType は監査ログの対象種別を表す。
type TargetType string

const (
	// TargetMigration は移行ストラテジー
	TargetMigration TargetType = "migration"
	// TargetCache はトークン・マニフェストキャッシュ
	TargetCache TargetType = "cache"
)

// Entry は監査ログエントリを表す。
type Entry struct {
	Time       string     `json:"time"`
	Level      string     `json:"level"`
	App        string     `json:"app"`
	EventID    string     `json:"event_id"`
	Msg        string     `json:"msg"`
	Operation  Operation  `json:"operation"`
	TargetType TargetType `json:"target_type"`
	TargetKey  string     `json:"target_key"`
	AdminUser  string     `json:"admin_user"`
	Result     string     `json:"result"`
	Details    string     `json:"details,omitempty"`
}

// Logger は監査ログを出力する。ドライバー識別子はマスキング設定に従う。
type Logger struct {
	writer    io.Writer
	adminUser string
	masker    *logging.Masker
	now       func() time.Time
	mu        sync.Mutex
}

// NewLogger は標準エラー出力へ書き込むLoggerを生成する。標準出力はTUIが使用する。
func NewLogger(adminUser string, masker *logging.Masker) *Logger {
	return NewLoggerWithWriter(os.Stderr, adminUser, masker)
}

// NewLoggerWithWriter は指定されたWriterを使用するLoggerを生成する。
func NewLoggerWithWriter(writer io.Writer, adminUser string, masker *logging.Masker) *Logger {
	if masker == nil {
		masker = logging.NewMasker(false)
	}
	return &Logger{
		writer:    writer,
		adminUser: adminUser,
		masker:    masker,
		now:       time.Now,
	}
}

func (l *Logger) log(op Operation, target TargetType, key string, err error, msg, details string) {
	entry := Entry{
		Time:       l.now().UTC().Format(time.RFC3339),
		Level:      "INFO",
		App:        "route-admin",
		EventID:    "AUDIT_LOG",
		Msg:        msg,
		Operation:  op,
		TargetType: target,
		TargetKey:  key,
		AdminUser:  l.adminUser,
		Result:     "success",
		Details:    details,
	}
	if err != nil {
		entry.Level = "WARN"
		entry.Result = "failure"
		entry.Details = err.Error()
	}

	data, mErr := json.Marshal(entry)
	if mErr != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.writer.Write(append(data, '\n'))
}

// LogStrategyChange はストラテジー変更操作を記録する。
func (l *Logger) LogStrategyChange(from, to, reason string, err error) {
	l.log(OpChangeStrategy, TargetMigration, from+"->"+to, err, "strategy change requested", reason)
}

// LogRollback は巻き戻し操作を記録する。
func (l *Logger) LogRollback(from, reason string, err error) {
	l.log(OpRollback, TargetMigration, from, err, "rollback requested", reason)
}

// LogAutoProgression は自動進行の切り替えを記録する。
func (l *Logger) LogAutoProgression(enabled bool, err error) {
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	l.log(OpAutoProgression, TargetMigration, state, err, "auto progression "+state, "")
}

// LogInvalidateDriver はドライバーキャッシュの全削除を記録する。
func (l *Logger) LogInvalidateDriver(societe, driver string, deleted int64, err error) {
	details := ""
	if err == nil {
		details = "deleted=" + strconv.FormatInt(deleted, 10)
	}
	l.log(OpInvalidateDriver, TargetCache, societe+":"+l.masker.Identifier(driver), err, "driver cache invalidated", details)
}

// LogDeleteManifest はマニフェストキャッシュの削除を記録する。
func (l *Logger) LogDeleteManifest(societe, driver, date string, err error) {
	l.log(OpDeleteManifest, TargetCache, societe+":"+l.masker.Identifier(driver)+":"+date, err, "manifest cache deleted", "")
}
