package manifest

import (
	"strings"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
)

// Result はマニフェスト解析結果。
// 構造化できなかった行はUnrecognizedにそのまま保持する。
type Result struct {
	RawText      string
	Fields       model.ManifestFields
	Actions      []model.PackageAction
	Unrecognized []string
}

// Parser はマッチャーのパイプラインで行単位に解析する。
type Parser struct {
	pipeline []Matcher
}

// NewParser は新しいParserを生成する。pipeline未指定の場合はDefaultPipelineを使う。
func NewParser(pipeline ...Matcher) *Parser {
	if len(pipeline) == 0 {
		pipeline = DefaultPipeline
	}
	return &Parser{pipeline: pipeline}
}

var defaultParser = NewParser()

// Parse はDefaultPipelineでテキストを解析する。
func Parse(text string) *Result {
	return defaultParser.Parse(text)
}

// DecodeAndParse はレスポンス本文を復号して解析する。
func DecodeAndParse(body []byte) (*Result, error) {
	text, err := Decode(body)
	if err != nil {
		return nil, err
	}
	return Parse(text), nil
}

// Parse はテキストを解析する。入力に関わらずエラーを返さない。
func (p *Parser) Parse(text string) *Result {
	res := &Result{RawText: text}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" {
			continue
		}
		m, ok := p.match(line)
		if !ok || !res.apply(m) {
			res.Unrecognized = append(res.Unrecognized, line)
		}
	}
	return res
}

func (p *Parser) match(line string) (Match, bool) {
	for _, matcher := range p.pipeline {
		if m, ok := matcher(line); ok {
			return m, true
		}
	}
	return Match{}, false
}

// apply はマッチ結果をフィールドに反映する。反映できなかった場合はfalse。
func (r *Result) apply(m Match) bool {
	f := &r.Fields
	switch m.Kind {
	case KindPackageAction:
		act := *m.Action
		if act.Index < 0 {
			act.Index = len(r.Actions) + 1
		}
		r.Actions = append(r.Actions, act)
		return true
	case KindSender:
		return setOnce(&f.Sender, m.Value)
	case KindTourNumber:
		return setOnce(&f.TourNumber, m.Value)
	case KindCarrierName:
		return setOnce(&f.CarrierName, m.Value)
	case KindDistributor:
		return setOnce(&f.Distributor, m.Value)
	case KindSummary:
		if f.Summary == nil {
			f.Summary = make(map[string]string)
		}
		if _, exists := f.Summary[m.Key]; exists {
			return false
		}
		f.Summary[m.Key] = m.Value
		return true
	case KindAddress:
		f.Addresses = append(f.Addresses, m.Value)
		return true
	case KindPostalCity:
		f.Localities = append(f.Localities, m.Locality)
		return true
	}
	return false
}

// setOnce は空の場合のみ値を設定する。
func setOnce(dst *string, v string) bool {
	if v == "" || *dst != "" {
		return false
	}
	*dst = v
	return true
}
