package model

import "time"

// ManifestFormatVersion はキャッシュ格納形式のバージョン。
const ManifestFormatVersion = "v1"

// PackageAction はマニフェストの1明細（荷物アクション）を表す。
// パース後は不変値として扱う。
type PackageAction struct {
	Index              int        `json:"index"`                          // 並び順
	DistributorID      string     `json:"distributor_id"`                 // 配達員マトリキュール
	DistributorName    string     `json:"distributor_name"`               // 配達員名
	Societe            string     `json:"societe"`                        // テナントコード
	Agence             string     `json:"agence"`                         // 営業所コード
	ArticleRef         string     `json:"article_ref"`                    // 商品参照
	TrackingNumber     string     `json:"tracking_number"`                // 追跡番号（バーコード）
	ActionType         string     `json:"action_type"`                    // アクション種別
	ActionCode         string     `json:"action_code"`                    // アクションコード
	Latitude           *float64   `json:"latitude,omitempty"`             // 緯度
	Longitude          *float64   `json:"longitude,omitempty"`            // 経度
	PlannedDurationMin *int       `json:"planned_duration_min,omitempty"` // 予定所要時間（分）
	ActionAt           *time.Time `json:"action_at,omitempty"`            // アクション時刻
	ReceivedAt         *time.Time `json:"received_at,omitempty"`          // 受信時刻
	Transmitted        bool       `json:"transmitted"`                    // 送信済みフラグ
	Confirmed          bool       `json:"confirmed"`                      // 確認済みフラグ
}

// HasLocation は座標が設定されているかを返す。
func (p PackageAction) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Locality は郵便番号と市町村名の組。
type Locality struct {
	PostalCode string `json:"postal_code,omitempty"`
	City       string `json:"city,omitempty"`
}

// ManifestFields はマニフェスト本文から抽出した構造化フィールド。
type ManifestFields struct {
	Sender      string            `json:"sender,omitempty"`       // 差出人
	TourNumber  string            `json:"tour_number,omitempty"`  // ツアー番号
	CarrierName string            `json:"carrier_name,omitempty"` // 運送会社名
	Distributor string            `json:"distributor,omitempty"`  // 配達員
	Addresses   []string          `json:"addresses,omitempty"`    // 住所行
	Localities  []Locality        `json:"localities,omitempty"`   // 郵便番号・市町村
	Summary     map[string]string `json:"summary,omitempty"`      // 集計行（ラベル→値）
}

// IsEmpty は抽出フィールドが1つもないかを返す。
func (f ManifestFields) IsEmpty() bool {
	return f.Sender == "" &&
		f.TourNumber == "" &&
		f.CarrierName == "" &&
		f.Distributor == "" &&
		len(f.Addresses) == 0 &&
		len(f.Localities) == 0 &&
		len(f.Summary) == 0
}

// CachedManifest はキャッシュに格納するデコード済みマニフェストを表す。
// Valkeyキー: tournee:{societe}:{driver}:{date}
type CachedManifest struct {
	Societe       string          `json:"societe"`
	Driver        string          `json:"driver"`
	Date          string          `json:"date"`
	Actions       []PackageAction `json:"actions"`
	Fields        ManifestFields  `json:"fields"`
	Unrecognized  []string        `json:"unrecognized,omitempty"`
	RawText       string          `json:"raw_text"`
	ExpiresAt     time.Time       `json:"expires_at"`
	AccessCount   int64           `json:"access_count"`
	LastAccess    time.Time       `json:"last_access"`
	FormatVersion string          `json:"format_version"`
}

// IsExpiredAt は論理有効期限を過ぎているかを返す。
func (m *CachedManifest) IsExpiredAt(now time.Time) bool {
	return !now.Before(m.ExpiresAt)
}

// Touch はアクセス回数と最終アクセス時刻を更新する。
func (m *CachedManifest) Touch(now time.Time) {
	m.AccessCount++
	m.LastAccess = now
}
