// Package migration はweb/mobile連携間のトラフィック移行制御を提供する。
package migration

import (
	"fmt"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/apperr"
)

// Strategy は移行ストラテジー。WebOnly < Mobile20 < Mobile50 < Mobile80 < MobileOnly の全順序を持つ。
type Strategy int

// ストラテジー定数
const (
	WebOnly Strategy = iota
	Mobile20
	Mobile50
	Mobile80
	MobileOnly

	strategyCount = int(MobileOnly) + 1
)

var strategyNames = [strategyCount]string{"web_only", "mobile_20", "mobile_50", "mobile_80", "mobile_only"}

var mobilePercentages = [strategyCount]int{0, 20, 50, 80, 100}

// Strategies は全ストラテジーを順序通りに返す。
func Strategies() []Strategy {
	return []Strategy{WebOnly, Mobile20, Mobile50, Mobile80, MobileOnly}
}

// Valid は定義済みのストラテジーかどうかを返す。
func (s Strategy) Valid() bool {
	return s >= WebOnly && s <= MobileOnly
}

// String はストラテジー名を返す。
func (s Strategy) String() string {
	if !s.Valid() {
		return fmt.Sprintf("strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// MobilePercentage はmobile連携へ振り分ける割合（0〜100）を返す。
func (s Strategy) MobilePercentage() int {
	if !s.Valid() {
		return 0
	}
	return mobilePercentages[s]
}

// Next は次のストラテジーを返す。末尾の場合はfalse。
func (s Strategy) Next() (Strategy, bool) {
	if !s.Valid() || s == MobileOnly {
		return s, false
	}
	return s + 1, true
}

// Previous は前のストラテジーを返す。先頭の場合はfalse。
func (s Strategy) Previous() (Strategy, bool) {
	if !s.Valid() || s == WebOnly {
		return s, false
	}
	return s - 1, true
}

// IsAdjacent はtoが隣接ストラテジーかどうかを返す。
func (s Strategy) IsAdjacent(to Strategy) bool {
	d := int(to) - int(s)
	return d == 1 || d == -1
}

// ParseStrategy はストラテジー名を解析する。
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", apperr.ErrUnknownStrategy, name)
}

// MarshalText はencoding.TextMarshalerを実装する。
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", apperr.ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText はencoding.TextUnmarshalerを実装する。
func (s *Strategy) UnmarshalText(b []byte) error {
	parsed, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Concrete はリクエストを実際に処理する連携方式。
type Concrete string

// 連携方式の定数
const (
	ConcreteWeb    Concrete = "web"
	ConcreteMobile Concrete = "mobile"
)
