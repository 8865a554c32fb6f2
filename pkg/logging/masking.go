// Package logging はログ関連のユーティリティを提供する。
package logging

// MaskIdentifier はドライバーのユーザー名・マトリキュールをマスキングする。
// 先頭3文字 + マスク + 末尾2文字
// 例: PCP0010699_A187518 → PCP*************18
// enabled=false の場合はマスキングせずにそのまま返す。
func MaskIdentifier(id string, enabled bool) string {
	if !enabled {
		return id
	}
	return MaskPartial(id, 3, 2, '*')
}

// MaskToken はSsoHoppsトークンをマスキングする。
// トークンは常に先頭6文字のみ残す（enabledに関わらずマスキングする）。
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	return MaskPartial(token, 6, 0, '*')
}

// MaskPartial は文字列の一部をマスキングする。
// keepPrefix: 先頭から保持する文字数
// keepSuffix: 末尾から保持する文字数
// maskChar: マスキングに使用する文字
func MaskPartial(s string, keepPrefix, keepSuffix int, maskChar rune) string {
	runes := []rune(s)
	length := len(runes)

	// 文字列が短すぎる場合はそのまま返す
	if length <= keepPrefix+keepSuffix {
		return s
	}

	result := make([]rune, length)
	copy(result, runes[:keepPrefix])
	for i := keepPrefix; i < length-keepSuffix; i++ {
		result[i] = maskChar
	}
	copy(result[length-keepSuffix:], runes[length-keepSuffix:])

	return string(result)
}

// Masker はマスキング設定を保持する構造体。
type Masker struct {
	enabled bool
}

// NewMasker は新しいMaskerを生成する。
func NewMasker(enabled bool) *Masker {
	return &Masker{enabled: enabled}
}

// Identifier はユーザー名・マトリキュールをマスキングする。
func (m *Masker) Identifier(id string) string {
	return MaskIdentifier(id, m.enabled)
}
