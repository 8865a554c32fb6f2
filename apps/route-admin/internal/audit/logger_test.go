package audit

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
)

func newTestLogger(buf *bytes.Buffer, mask bool) *Logger {
	l := NewLoggerWithWriter(buf, "ops", logging.NewMasker(mask))
	l.now = func() time.Time { return time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC) }
	return l
}

func decode(t *testing.T, buf *bytes.Buffer) Entry {
	t.Helper()
	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	return entry
}

func TestLogger_LogStrategyChange(t *testing.T) {
	var buf bytes.Buffer
	newTestLogger(&buf, false).LogStrategyChange("mobile_20", "mobile_50", "weekly rollout", nil)

	entry := decode(t, &buf)
	if entry.Time != "2025-03-01T08:00:00Z" {
		t.Errorf("time = %q", entry.Time)
	}
	if entry.App != "route-admin" || entry.EventID != "AUDIT_LOG" || entry.Level != "INFO" {
		t.Errorf("unexpected envelope: %+v", entry)
	}
	if entry.Operation != OpChangeStrategy || entry.TargetType != TargetMigration {
		t.Errorf("operation/target = %s/%s", entry.Operation, entry.TargetType)
	}
	if entry.TargetKey != "mobile_20->mobile_50" {
		t.Errorf("target_key = %q", entry.TargetKey)
	}
	if entry.Result != "success" || entry.Details != "weekly rollout" {
		t.Errorf("result/details = %q/%q", entry.Result, entry.Details)
	}
	if entry.AdminUser != "ops" {
		t.Errorf("admin_user = %q, want ops", entry.AdminUser)
	}
}

func TestLogger_Failure(t *testing.T) {
	var buf bytes.Buffer
	newTestLogger(&buf, false).LogRollback("web_only", "manual", errors.New("gateway returned 409"))

	entry := decode(t, &buf)
	if entry.Level != "WARN" || entry.Result != "failure" {
		t.Errorf("level/result = %s/%s", entry.Level, entry.Result)
	}
	if entry.Details != "gateway returned 409" {
		t.Errorf("details = %q", entry.Details)
	}
}

func TestLogger_LogAutoProgression(t *testing.T) {
	var buf bytes.Buffer
	newTestLogger(&buf, false).LogAutoProgression(true, nil)

	if !strings.Contains(buf.String(), `"msg":"auto progression enabled"`) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestLogger_CacheOperationsMaskDriver(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, true)

	l.LogInvalidateDriver("PCP0010699", "A187518", 3, nil)
	entry := decode(t, &buf)
	if entry.TargetKey != "PCP0010699:A18**18" {
		t.Errorf("target_key = %q", entry.TargetKey)
	}
	if entry.Details != "deleted=3" {
		t.Errorf("details = %q", entry.Details)
	}

	buf.Reset()
	l.LogDeleteManifest("PCP0010699", "A187518", "2025-03-01", nil)
	entry = decode(t, &buf)
	if entry.Operation != OpDeleteManifest || entry.TargetKey != "PCP0010699:A18**18:2025-03-01" {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, false)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			l.LogAutoProgression(false, nil)
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	for _, line := range lines {
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Errorf("invalid JSON line %q: %v", line, err)
		}
	}
}
