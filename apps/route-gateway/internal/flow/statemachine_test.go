package flow

import (
	"errors"
	"testing"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		current State
		event   Event
		want    State
		wantErr bool
	}{
		{"開始→デバイス監査", StateStart, EventStepStarted, StateDeviceAuditInProgress, false},
		{"デバイス監査成功", StateDeviceAuditInProgress, EventStepSucceeded, StateDeviceAuditCompleted, false},
		{"デバイス監査許容", StateDeviceAuditInProgress, EventStepTolerated, StateDeviceAuditCompleted, false},
		{"デバイス監査失敗", StateDeviceAuditInProgress, EventStepFailed, StateFailed, false},
		{"監査完了→バージョン確認", StateDeviceAuditCompleted, EventStepStarted, StateVersionCheckInProgress, false},
		{"バージョン確認完了→ログイン", StateVersionCheckCompleted, EventStepStarted, StateLoginInProgress, false},
		{"ログイン成功", StateLoginInProgress, EventStepSucceeded, StateLoginCompleted, false},
		{"ログイン失敗", StateLoginInProgress, EventStepFailed, StateFailed, false},
		{"ログ送信許容", StateLoggingInProgress, EventStepTolerated, StateLoggingCompleted, false},
		{"ログ送信完了→READY", StateLoggingCompleted, EventFlowFinished, StateReady, false},

		{"ログインは許容されない", StateLoginInProgress, EventStepTolerated, "", true},
		{"ログ送信は致命的にならない", StateLoggingInProgress, EventStepFailed, "", true},
		{"ステップ飛ばし", StateStart, EventFlowFinished, "", true},
		{"READYからの遷移", StateReady, EventStepStarted, "", true},
		{"FAILEDからの遷移", StateFailed, EventStepStarted, "", true},
		{"未定義状態", State("UNKNOWN"), EventStepStarted, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateTransition(tt.current, tt.event)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidState) {
					t.Errorf("ValidateTransition() error = %v, want ErrInvalidState", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateTransition() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ValidateTransition() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransition(t *testing.T) {
	errStep := errors.New("step failed")

	tests := []struct {
		name    string
		current State
		res     StepResult
		want    State
		wantErr bool
	}{
		{"監査成功", StateDeviceAuditInProgress, StepResult{Step: StepDeviceAudit}, StateDeviceAuditCompleted, false},
		{"監査失敗・トークンなし", StateDeviceAuditInProgress, StepResult{Step: StepDeviceAudit, Err: errStep}, StateFailed, false},
		{"監査失敗・トークンあり", StateDeviceAuditInProgress, StepResult{Step: StepDeviceAudit, Err: errStep, HasToken: true}, StateDeviceAuditCompleted, false},
		{"バージョン確認失敗・トークンなし", StateVersionCheckInProgress, StepResult{Step: StepVersionCheck, Err: errStep}, StateFailed, false},
		{"バージョン確認失敗・トークンあり", StateVersionCheckInProgress, StepResult{Step: StepVersionCheck, Err: errStep, HasToken: true}, StateVersionCheckCompleted, false},
		{"ログイン失敗・トークンあり", StateLoginInProgress, StepResult{Step: StepLoginPrincipal, Err: errStep, HasToken: true}, StateFailed, false},
		{"ログ送信失敗", StateLoggingInProgress, StepResult{Step: StepLoggingAutomatico, Err: errStep}, StateLoggingCompleted, false},
		{"状態とステップの不一致", StateLoginInProgress, StepResult{Step: StepDeviceAudit}, "", true},
		{"実行中でない状態", StateStart, StepResult{Step: StepDeviceAudit}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.current, tt.res)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidState) {
					t.Errorf("Transition() error = %v, want ErrInvalidState", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Transition() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Transition() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateReady, true},
		{StateFailed, true},
		{StateStart, false},
		{StateLoginInProgress, false},
		{StateLoggingCompleted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := IsTerminal(tt.state); got != tt.want {
				t.Errorf("IsTerminal(%q) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}
