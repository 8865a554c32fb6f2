package migration

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint はルーティング判定に使うリクエスト識別情報。
type Fingerprint struct {
	Username  string
	Societe   string
	Matricule string
	Date      string
}

// Bucket はFingerprintを[0,100)に写像する。同じ入力には常に同じ値を返す。
func Bucket(fp Fingerprint) int {
	key := strings.Join([]string{fp.Username, fp.Societe, fp.Matricule, fp.Date}, "|")
	return int(xxhash.Sum64String(key) % 100)
}

// Route はストラテジーとFingerprintから連携方式を決定する。
func Route(s Strategy, fp Fingerprint) Concrete {
	switch s {
	case WebOnly:
		return ConcreteWeb
	case MobileOnly:
		return ConcreteMobile
	}
	if Bucket(fp) < s.MobilePercentage() {
		return ConcreteMobile
	}
	return ConcreteWeb
}
