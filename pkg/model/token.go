package model

import "time"

// DefaultTokenLifetimeHours はセッショントークンの標準有効時間。
const DefaultTokenLifetimeHours = 24

// SessionToken はキャリアが発行するSsoHoppsトークンを表す。
// Valkeyキー: token:{societe}:{driver}
type SessionToken struct {
	Token     string    `json:"token"`      // SsoHopps値
	Societe   string    `json:"societe"`    // テナントコード
	Username  string    `json:"username"`   // ログインユーザー名
	Matricule string    `json:"matricule"`  // キャリア側ドライバー識別子
	IssuedAt  time.Time `json:"issued_at"`  // 発行時刻
	ExpiresAt time.Time `json:"expires_at"` // 有効期限
}

// NewSessionToken は発行時刻と有効時間から新しいSessionTokenを生成する。
func NewSessionToken(token, societe, username, matricule string, issuedAt time.Time, expiresInHours int) *SessionToken {
	return &SessionToken{
		Token:     token,
		Societe:   societe,
		Username:  username,
		Matricule: matricule,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(time.Duration(expiresInHours) * time.Hour),
	}
}

// IsExpiredAt は指定時刻時点で期限切れかどうかを返す。
func (t *SessionToken) IsExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// ValidAt はトークンが指定時刻に使用可能かどうかを返す。
func (t *SessionToken) ValidAt(now time.Time) bool {
	return t != nil && t.Token != "" && !t.IsExpiredAt(now)
}

// Remaining は指定時刻からの残り有効時間を返す。期限切れの場合は0。
func (t *SessionToken) Remaining(now time.Time) time.Duration {
	d := t.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
