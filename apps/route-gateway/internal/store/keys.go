package store

// Valkeyキープレフィックス
const (
	KeyPrefixTournee     = "tournee:"    // デコード済みマニフェスト
	KeyPrefixToken       = "token:"      // セッショントークン
	KeyPrefixDriverIndex = "idx:driver:" // ドライバー単位のキー索引
	KeyPrefixDecoy       = "decoy:"      // カモフラージュ用ダミー
	KeyPrefixDevice      = "device:"     // ドライバー毎の端末情報
)

// 固定キー
const (
	KeyDriverIndexSet    = "idx:drivers"        // ドライバー索引キーの一覧
	KeyMigrationStrategy = "migration:strategy" // 現在の移行ストラテジー
	KeyMigrationHistory  = "migration:history"  // ストラテジー変更履歴
)

// TourneeKey はマニフェストキャッシュのキーを返す。
func TourneeKey(societe, driver, date string) string {
	return KeyPrefixTournee + societe + ":" + driver + ":" + date
}

// TokenKey はトークンキャッシュのキーを返す。
func TokenKey(societe, driver string) string {
	return KeyPrefixToken + societe + ":" + driver
}

// DriverIndexKey はドライバー索引のキーを返す。
func DriverIndexKey(societe, driver string) string {
	return KeyPrefixDriverIndex + societe + ":" + driver
}

// DeviceKey は端末情報のキーを返す。
func DeviceKey(societe, driver string) string {
	return KeyPrefixDevice + societe + ":" + driver
}
