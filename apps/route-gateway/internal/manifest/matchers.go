package manifest

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Kind は行マッチャーの種別。
type Kind string

const (
	KindPackageAction Kind = "package_action"
	KindSender        Kind = "sender"
	KindTourNumber    Kind = "tour_number"
	KindCarrierName   Kind = "carrier_name"
	KindDistributor   Kind = "distributor"
	KindSummary       Kind = "summary"
	KindAddress       Kind = "address"
	KindPostalCity    Kind = "postal_city"
)

// Match は1行に対するマッチ結果。
type Match struct {
	Kind     Kind
	Key      string
	Value    string
	Locality model.Locality
	Action   *model.PackageAction
}

// Matcher は1行を解釈する純粋関数。
type Matcher func(line string) (Match, bool)

// DefaultPipeline は適用順のマッチャー一覧。
var DefaultPipeline = []Matcher{
	MatchPackageAction,
	MatchSender,
	MatchTourNumber,
	MatchCarrierName,
	MatchDistributor,
	MatchSummary,
	MatchAddress,
	MatchPostalCity,
}

// fold は大文字小文字とアクセントを除去した比較用文字列を返す。
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// afterColon はコロン以降の値を返す。コロンがなければ空文字列。
func afterColon(line string) string {
	if i := strings.IndexAny(line, ":："); i >= 0 {
		_, size := utf8.DecodeRuneInString(line[i:])
		return strings.TrimSpace(line[i+size:])
	}
	return ""
}

// MatchPackageAction は "ACTION|..." または "COLIS|..." 形式の明細行を解釈する。
// フィールド: 種別|順序|ソシエテ|営業所|配達員ID|配達員名|商品参照|バーコード|
// アクションコード|アクション名|緯度|経度|所要分|アクション日時|受信日時|送信済|確認済
// 末尾フィールドの欠落は許容する。
func MatchPackageAction(line string) (Match, bool) {
	parts := strings.Split(line, "|")
	if len(parts) < 2 {
		return Match{}, false
	}
	head := strings.ToUpper(strings.TrimSpace(parts[0]))
	if head != "ACTION" && head != "COLIS" {
		return Match{}, false
	}

	field := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}

	act := &model.PackageAction{
		DistributorID:      field(4),
		DistributorName:    field(5),
		Societe:            field(2),
		Agence:             field(3),
		ArticleRef:         field(6),
		TrackingNumber:     field(7),
		ActionCode:         field(8),
		ActionType:         field(9),
		Latitude:           parseFloat(field(10)),
		Longitude:          parseFloat(field(11)),
		PlannedDurationMin: parseInt(field(12)),
		ActionAt:           parseTime(field(13)),
		ReceivedAt:         parseTime(field(14)),
		Transmitted:        parseBool(field(15)),
		Confirmed:          parseBool(field(16)),
	}
	act.Index = -1
	if n, err := strconv.Atoi(field(1)); err == nil {
		act.Index = n
	}
	return Match{Kind: KindPackageAction, Action: act}, true
}

// MatchSender は差出人マーカー行を解釈する。
func MatchSender(line string) (Match, bool) {
	f := fold(line)
	for _, marker := range []string{"expediteur", "emetteur"} {
		if i := strings.Index(f, marker); i >= 0 {
			return Match{Kind: KindSender, Value: valueAfterMarker(line, f, i+len(marker))}, true
		}
	}
	return Match{}, false
}

var tourNumberRe = regexp.MustCompile(`(?i)tourn[eé]e\s*(?:n\s*[°ºo]\.?|num[eé]ro|no\.?|#)?\s*[:：]?\s*([A-Za-z0-9][A-Za-z0-9-]*)`)

// MatchTourNumber はツアー番号マーカー行を解釈する。
func MatchTourNumber(line string) (Match, bool) {
	f := fold(line)
	if !strings.Contains(f, "tournee") {
		return Match{}, false
	}
	m := tourNumberRe.FindStringSubmatch(line)
	if m == nil || !containsDigit(m[1]) {
		return Match{}, false
	}
	return Match{Kind: KindTourNumber, Value: m[1]}, true
}

// MatchCarrierName は運送会社名を含む行を解釈する。
func MatchCarrierName(line string) (Match, bool) {
	if !strings.Contains(fold(line), "colis priv") {
		return Match{}, false
	}
	v := afterColon(line)
	if v == "" {
		v = strings.TrimSpace(line)
	}
	return Match{Kind: KindCarrierName, Value: v}, true
}

// MatchDistributor は配達員マーカー行を解釈する。
func MatchDistributor(line string) (Match, bool) {
	f := fold(line)
	for _, marker := range []string{"distributeur", "livreur", "chauffeur"} {
		if i := strings.Index(f, marker); i >= 0 {
			return Match{Kind: KindDistributor, Value: valueAfterMarker(line, f, i+len(marker))}, true
		}
	}
	return Match{}, false
}

// summaryLabels は集計行として扱うラベル接頭辞（比較用に正規化済み）。
var summaryLabels = []string{
	"nombre de colis", "nb colis", "total colis", "nombre de points", "nb points",
	"nombre d'arrets", "poids total", "poids", "volume", "distance", "duree", "total",
}

// MatchSummary は "ラベル: 値" 形式の集計行を解釈する。
func MatchSummary(line string) (Match, bool) {
	i := strings.IndexAny(line, ":：")
	if i <= 0 {
		return Match{}, false
	}
	label := strings.TrimSpace(fold(line[:i]))
	for _, prefix := range summaryLabels {
		if strings.HasPrefix(label, prefix) {
			value := afterColon(line)
			if value == "" {
				return Match{}, false
			}
			return Match{Kind: KindSummary, Key: summaryKey(label), Value: value}, true
		}
	}
	return Match{}, false
}

// streetKeywords は住所行と判定する道路種別語。
var streetKeywords = map[string]bool{
	"rue": true, "avenue": true, "av": true, "boulevard": true, "bd": true,
	"route": true, "chemin": true, "allee": true, "impasse": true, "place": true,
	"quai": true, "cours": true, "voie": true, "square": true, "residence": true,
	"lotissement": true, "chaussee": true, "passage": true, "sentier": true,
}

// MatchAddress は道路種別語を含む行を住所として解釈する。
func MatchAddress(line string) (Match, bool) {
	words := strings.FieldsFunc(fold(line), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if streetKeywords[w] {
			street := afterColon(line)
			if street == "" {
				street = strings.TrimSpace(line)
			}
			return Match{Kind: KindAddress, Value: street}, true
		}
	}
	return Match{}, false
}

var postalRe = regexp.MustCompile(`\b((?:0[1-9]|[1-8]\d|9[0-5]|97)\d{3})\b\s*(.*)$`)

// knownCities は郵便番号なしでも地名行と判定する市町村。
var knownCities = []string{
	"paris", "marseille", "lyon", "toulouse", "nice", "nantes", "strasbourg",
	"montpellier", "bordeaux", "lille", "rennes", "reims", "toulon", "grenoble",
}

// MatchPostalCity は郵便番号または既知の市町村名を含む行を解釈する。
func MatchPostalCity(line string) (Match, bool) {
	if m := postalRe.FindStringSubmatch(line); m != nil {
		city := strings.TrimSpace(strings.Trim(m[2], ",;-"))
		return Match{Kind: KindPostalCity, Locality: model.Locality{PostalCode: m[1], City: city}}, true
	}
	f := fold(line)
	for _, c := range knownCities {
		if containsWord(f, c) {
			return Match{Kind: KindPostalCity, Locality: model.Locality{City: strings.TrimSpace(line)}}, true
		}
	}
	return Match{}, false
}

// valueAfterMarker はマーカー直後の値を取り出す。コロンがあればコロン以降を優先する。
func valueAfterMarker(line, folded string, end int) string {
	if v := afterColon(line); v != "" {
		return v
	}
	// foldedとlineはアクセント除去でバイト長がずれるため、rune数で位置を合わせる
	n := len([]rune(folded[:end]))
	r := []rune(line)
	if n > len(r) {
		return ""
	}
	return strings.TrimSpace(strings.TrimLeft(string(r[n:]), " :-"))
}

func summaryKey(label string) string {
	key := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, label)
	for strings.Contains(key, "__") {
		key = strings.ReplaceAll(key, "__", "_")
	}
	return strings.Trim(key, "_")
}

func containsDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func containsWord(s, word string) bool {
	for _, w := range strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }) {
		if w == word {
			return true
		}
	}
	return false
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "o", "oui", "y", "yes":
		return true
	}
	return false
}
