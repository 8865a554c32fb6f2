// Package flow はキャリア認証プロトコルの状態機械と実行器を提供する。
package flow

// State は認証フローの状態を表す型。
type State string

// 認証フロー状態の定数
const (
	StateStart                  State = "START"
	StateDeviceAuditInProgress  State = "DEVICE_AUDIT_IN_PROGRESS"
	StateDeviceAuditCompleted   State = "DEVICE_AUDIT_COMPLETED"
	StateVersionCheckInProgress State = "VERSION_CHECK_IN_PROGRESS"
	StateVersionCheckCompleted  State = "VERSION_CHECK_COMPLETED"
	StateLoginInProgress        State = "LOGIN_IN_PROGRESS"
	StateLoginCompleted         State = "LOGIN_COMPLETED"
	StateLoggingInProgress      State = "LOGGING_IN_PROGRESS"
	StateLoggingCompleted       State = "LOGGING_COMPLETED"
	StateReady                  State = "READY"  // 終了状態
	StateFailed                 State = "FAILED" // 終了状態
)

// Step は認証ステップを表す型。
type Step string

// 認証ステップの定数（実行順）
const (
	StepDeviceAudit       Step = "DeviceAudit"
	StepVersionCheck      Step = "VersionCheck"
	StepLoginPrincipal    Step = "LoginPrincipal"
	StepLoggingAutomatico Step = "LoggingAutomatico"
	StepReconnect         Step = "Reconnect"
)

// Event は状態遷移イベントを表す型。
type Event string

// 状態遷移イベントの定数
const (
	EventStepStarted   Event = "STEP_STARTED"   // ステップ開始
	EventStepSucceeded Event = "STEP_SUCCEEDED" // ステップ成功
	EventStepTolerated Event = "STEP_TOLERATED" // 失敗したが許容
	EventStepFailed    Event = "STEP_FAILED"    // 致命的失敗
	EventFlowFinished  Event = "FLOW_FINISHED"  // 全ステップ完了
)

// Tolerance はステップ失敗の許容規則。
type Tolerance int

const (
	TolerateNever     Tolerance = iota // 常に致命的
	TolerateWithToken                  // トークン取得済みなら許容
	TolerateAlways                     // 常に許容（ログのみ）
)

// stepTolerance はステップ毎の失敗許容規則。
var stepTolerance = map[Step]Tolerance{
	StepDeviceAudit:       TolerateWithToken,
	StepVersionCheck:      TolerateWithToken,
	StepLoginPrincipal:    TolerateNever,
	StepLoggingAutomatico: TolerateAlways,
}

// stepOrder は実行順のステップ一覧。
var stepOrder = []Step{StepDeviceAudit, StepVersionCheck, StepLoginPrincipal, StepLoggingAutomatico}

// inProgressStep は実行中状態と対応するステップ。
var inProgressStep = map[State]Step{
	StateDeviceAuditInProgress:  StepDeviceAudit,
	StateVersionCheckInProgress: StepVersionCheck,
	StateLoginInProgress:        StepLoginPrincipal,
	StateLoggingInProgress:      StepLoggingAutomatico,
}

// transitionTable は状態遷移テーブル。
var transitionTable = map[State]map[Event]State{
	StateStart: {
		EventStepStarted: StateDeviceAuditInProgress,
	},
	StateDeviceAuditInProgress: {
		EventStepSucceeded: StateDeviceAuditCompleted,
		EventStepTolerated: StateDeviceAuditCompleted,
		EventStepFailed:    StateFailed,
	},
	StateDeviceAuditCompleted: {
		EventStepStarted: StateVersionCheckInProgress,
	},
	StateVersionCheckInProgress: {
		EventStepSucceeded: StateVersionCheckCompleted,
		EventStepTolerated: StateVersionCheckCompleted,
		EventStepFailed:    StateFailed,
	},
	StateVersionCheckCompleted: {
		EventStepStarted: StateLoginInProgress,
	},
	StateLoginInProgress: {
		EventStepSucceeded: StateLoginCompleted,
		EventStepFailed:    StateFailed,
	},
	StateLoginCompleted: {
		EventStepStarted: StateLoggingInProgress,
	},
	StateLoggingInProgress: {
		EventStepSucceeded: StateLoggingCompleted,
		EventStepTolerated: StateLoggingCompleted,
	},
	StateLoggingCompleted: {
		EventFlowFinished: StateReady,
	},
}

// StepResult は1ステップの実行結果。
type StepResult struct {
	Step     Step
	Err      error
	HasToken bool // 実行後にセッショントークンを保持しているか
}

// ValidateTransition は現在の状態とイベントから次の状態を返す。
// 無効な遷移の場合はErrInvalidStateを返す。
func ValidateTransition(current State, event Event) (State, error) {
	if IsTerminal(current) {
		return "", ErrInvalidState
	}
	events, ok := transitionTable[current]
	if !ok {
		return "", ErrInvalidState
	}
	next, ok := events[event]
	if !ok {
		return "", ErrInvalidState
	}
	return next, nil
}

// Transition は実行中状態とステップ結果から次の状態を返す。
// 失敗の扱いはステップ毎の許容規則で決まる。
func Transition(current State, res StepResult) (State, error) {
	step, ok := inProgressStep[current]
	if !ok || step != res.Step {
		return "", ErrInvalidState
	}
	return ValidateTransition(current, Classify(res))
}

// Classify はステップ結果をイベントに分類する。
func Classify(res StepResult) Event {
	if res.Err == nil {
		return EventStepSucceeded
	}
	switch stepTolerance[res.Step] {
	case TolerateAlways:
		return EventStepTolerated
	case TolerateWithToken:
		if res.HasToken {
			return EventStepTolerated
		}
	}
	return EventStepFailed
}

// IsTerminal は指定された状態が終了状態（READY/FAILED）かどうかを判定する。
func IsTerminal(state State) bool {
	return state == StateReady || state == StateFailed
}
