// Package model はキャリア連携で共有するドメインモデルを定義する。
package model

import "fmt"

// DeviceIdentity はキャリア公式アプリを模擬する端末情報を表す。
// 1回の認証フロー内では全リクエストで同一の値を使用すること。
type DeviceIdentity struct {
	Model          string `json:"model" yaml:"model"`                     // 端末モデル名
	Manufacturer   string `json:"manufacturer" yaml:"manufacturer"`       // メーカー名
	OSVersion      string `json:"os_version" yaml:"os_version"`           // OSバージョン文字列（装飾込み）
	InstallationID string `json:"installation_id" yaml:"installation_id"` // インストール識別子
	IMEI           string `json:"imei" yaml:"imei"`                       // IMEI形式の識別子
	SerialNumber   string `json:"serial_number" yaml:"serial_number"`     // シリアル番号
}

// MissingFields は未設定のフィールド名を返す。
func (d DeviceIdentity) MissingFields() []string {
	var missing []string
	if d.Model == "" {
		missing = append(missing, "model")
	}
	if d.OSVersion == "" {
		missing = append(missing, "os_version")
	}
	if d.InstallationID == "" {
		missing = append(missing, "installation_id")
	}
	if d.IMEI == "" {
		missing = append(missing, "imei")
	}
	if d.SerialNumber == "" {
		missing = append(missing, "serial_number")
	}
	return missing
}

// Validate は必須フィールドがすべて設定されているかを検証する。
func (d DeviceIdentity) Validate() error {
	if missing := d.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("device identity incomplete: %v", missing)
	}
	return nil
}

// AppIdentity は模擬対象のクライアントアプリ情報を表す。
// デプロイ単位で固定。
type AppIdentity struct {
	PackageName string `json:"package_name"` // パッケージ識別子
	Name        string `json:"name"`         // アプリ名
	Version     string `json:"version"`      // バージョン文字列
	VersionCode string `json:"version_code"` // バージョンコード
	Societe     string `json:"societe"`      // テナントコード
}
