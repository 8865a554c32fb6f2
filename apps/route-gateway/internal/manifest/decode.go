// Package manifest はキャリアのマニフェスト（Base64 + 独自テキスト形式）をデコード・解析する。
package manifest

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/apperr"
)

// ErrMalformedManifest はBase64またはUTF-8のデコード失敗エラー。
// 解析ヒューリスティックの不一致はエラーにしない。
var ErrMalformedManifest = apperr.ErrMalformedManifest

// envelopeKeys はJSONエンベロープ内でBase64本文を探すキー（大文字小文字無視）。
var envelopeKeys = []string{"data", "tournee", "content", "result", "base64", "fichier", "value"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode はレスポンス本文からBase64ペイロードを取り出し、UTF-8テキストに復号する。
func Decode(body []byte) (string, error) {
	payload, err := ExtractPayload(body)
	if err != nil {
		return "", err
	}
	raw, err := decodeBase64(payload)
	if err != nil {
		return "", err
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: decoded payload is not valid UTF-8", ErrMalformedManifest)
	}
	return string(raw), nil
}

// Encode はテキストをキャリア形式のBase64に符号化する。
func Encode(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// ExtractPayload はレスポンス本文からBase64文字列を取り出す。
// 本文は生のBase64、JSON文字列、またはJSONエンベロープのいずれか。
func ExtractPayload(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", fmt.Errorf("%w: invalid JSON string: %v", ErrMalformedManifest, err)
		}
		return s, nil
	case '{':
		return fromEnvelope(trimmed, 0)
	}
	return string(trimmed), nil
}

// fromEnvelope はJSONオブジェクトから既知キーの値を探す。1段のネストまで許容する。
func fromEnvelope(data []byte, depth int) (string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("%w: invalid JSON envelope: %v", ErrMalformedManifest, err)
	}

	for _, want := range envelopeKeys {
		for k, v := range obj {
			if !strings.EqualFold(k, want) {
				continue
			}
			v = bytes.TrimSpace(v)
			if len(v) == 0 {
				continue
			}
			switch v[0] {
			case '"':
				var s string
				if err := json.Unmarshal(v, &s); err == nil {
					return s, nil
				}
			case '{':
				if depth == 0 {
					if s, err := fromEnvelope(v, depth+1); err == nil {
						return s, nil
					}
				}
			}
		}
	}
	return "", fmt.Errorf("%w: no payload field in JSON envelope", ErrMalformedManifest)
}

func decodeBase64(payload string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, payload)

	if out, err := base64.StdEncoding.DecodeString(clean); err == nil {
		return out, nil
	}
	if out, err := base64.RawStdEncoding.DecodeString(clean); err == nil {
		return out, nil
	}
	out, err := base64.URLEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrMalformedManifest, err)
	}
	return out, nil
}
