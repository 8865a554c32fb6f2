// Package headers はキャリアゲートウェイが期待するリクエストヘッダーを構築する。
package headers

// Category はエンドポイント種別を表す。
type Category string

const (
	CategoryAuth         Category = "auth"
	CategoryRefresh      Category = "refresh"
	CategoryManifest     Category = "manifest"
	CategoryVersionCheck Category = "version_check"
	CategoryDeviceAudit  Category = "device_audit"
	CategoryLogging      Category = "logging"
)

// requiresUsername はユーザー名が必須のカテゴリかを返す。
func (c Category) requiresUsername() bool {
	switch c {
	case CategoryAuth, CategoryRefresh, CategoryManifest, CategoryLogging:
		return true
	}
	return false
}

// requiresToken はセッショントークンが必須のカテゴリかを返す。
func (c Category) requiresToken() bool {
	switch c {
	case CategoryRefresh, CategoryManifest:
		return true
	}
	return false
}
