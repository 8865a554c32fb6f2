package carrier

import "github.com/DanielHNCT/delivery-routing-sub000/pkg/model"

// Call は1回のキャリア呼び出しに共通する識別情報。
type Call struct {
	Device     model.DeviceIdentity
	ActivityID string
	Username   string
	Token      string
	Societe    string // 空の場合はAppIdentityのsocieteを使う
}

// loginRequest はログインAPIのリクエストボディ。
type loginRequest struct {
	Login    string      `json:"login"`
	Password string      `json:"password"`
	Societe  string      `json:"societe"`
	Commun   loginCommun `json:"commun"`
}

type loginCommun struct {
	DureeTokenInHour int `json:"dureeTokenInHour"`
}

// refreshRequest はトークン更新APIのリクエストボディ。
type refreshRequest struct {
	DureeTokenInHour int    `json:"dureeTokenInHour"`
	Token            string `json:"token"`
}

type tokens struct {
	SsoHopps string `json:"SsoHopps"`
}

// loginResponse はログイン・トークン更新APIのレスポンス。
type loginResponse struct {
	IsAuthentif bool   `json:"isAuthentif"`
	Identity    string `json:"identity"`
	Matricule   string `json:"matricule"`
	Societe     string `json:"societe"`
	Tokens      tokens `json:"tokens"`
}

// LoginResult はログイン結果。
type LoginResult struct {
	Token     string
	Matricule string
	Societe   string
}

// deviceAuditRequest は端末監査APIのリクエストボディ。
type deviceAuditRequest struct {
	IMEI           string `json:"imei"`
	SerialNumber   string `json:"serialNumber"`
	InstallationID string `json:"installationId"`
	Model          string `json:"model"`
	Manufacturer   string `json:"manufacturer"`
	OSVersion      string `json:"osVersion"`
	AppVersion     string `json:"appVersion"`
}

// deviceAuditResponse は端末監査APIのレスポンス。トークンは任意。
type deviceAuditResponse struct {
	Registered bool   `json:"registered"`
	Tokens     tokens `json:"tokens"`
}

// AuditResult は端末監査結果。
type AuditResult struct {
	Registered bool
	Token      string
}

// versionCheckRequest はバージョン確認APIのリクエストボディ。
type versionCheckRequest struct {
	PackageName string `json:"packageName"`
	Version     string `json:"version"`
	VersionCode string `json:"versionCode"`
}

// versionCheckResponse はバージョン確認APIのレスポンス。
type versionCheckResponse struct {
	IsUpToDate    bool   `json:"isUpToDate"`
	LatestVersion string `json:"latestVersion"`
	Tokens        tokens `json:"tokens"`
}

// VersionResult はバージョン確認結果。
type VersionResult struct {
	UpToDate      bool
	LatestVersion string
	Token         string
}

// loggingRequest はLoggingAutomaticoのリクエストボディ。
type loggingRequest struct {
	Matricule  string `json:"matricule"`
	Societe    string `json:"societe"`
	ActivityID string `json:"activityId"`
	Event      string `json:"event"`
	DeviceID   string `json:"deviceId"`
}

// manifestRequest はマニフェスト取得APIのリクエストボディ。
// Agence/Concentrateurは常にnullで送信する。
type manifestRequest struct {
	Societe       string  `json:"Societe"`
	Matricule     string  `json:"Matricule"`
	DateDebut     string  `json:"DateDebut"`
	Agence        *string `json:"Agence"`
	Concentrateur *string `json:"Concentrateur"`
}
