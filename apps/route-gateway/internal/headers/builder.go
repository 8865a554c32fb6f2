package headers

import (
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
	"github.com/google/uuid"
)

// Options はBuilderの環境依存値。
type Options struct {
	Origin       string // 認証系のOrigin
	Referer      string // 認証系のReferer
	ManifestHost string // マニフェスト取得時に明示するHost
}

// ConsistencyWarning はヘッダー構築時の事前検査で検出した不整合。
// エラーとしては返さずログにのみ出力する。
type ConsistencyWarning struct {
	Category Category
	Field    string
	Message  string
}

// String はログ出力用の文字列表現を返す。
func (w ConsistencyWarning) String() string {
	return fmt.Sprintf("%s: %s %s", w.Category, w.Field, w.Message)
}

// Request は構築済みヘッダーと検査結果。
type Request struct {
	Category Category
	Headers  http.Header
	Warnings []ConsistencyWarning
}

// Builder はエンドポイント種別ごとのヘッダーセットを構築する。
type Builder struct {
	opts Options
}

// NewBuilder は新しいBuilderを生成する。
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Build はヘッダーセットを構築する。usernameとtokenは空文字列で省略扱い。
func (b *Builder) Build(category Category, device model.DeviceIdentity, app model.AppIdentity, activityID, username, token string) *Request {
	h := make(http.Header)
	osVersion := CleanOSVersion(device.OSVersion)

	// 共通セット
	h.Set("Content-Type", contentTypeJSON)
	h.Set("Connection", "Keep-Alive")
	h.Set("User-Agent", userAgent(osVersion, device.Model))
	h.Set(HeaderActivityID, activityID)
	h.Set(HeaderCorrelationID, uuid.NewString())
	h.Set(HeaderAppName, app.Name)
	h.Set(HeaderAppIdentifier, app.PackageName)
	h.Set(HeaderAppVersion, app.Version)
	h.Set(HeaderVersionCode, app.VersionCode)
	h.Set(HeaderOSVersion, osVersion)
	h.Set(HeaderDevice, device.Model)
	h.Set(HeaderDomaine, domaineValue)

	if username != "" {
		h.Set(HeaderUserName, CleanUsername(username, app.Societe))
		h.Set(HeaderSociete, app.Societe)
	}
	if token != "" {
		h.Set(HeaderSession, token)
	}

	switch category {
	case CategoryAuth:
		h.Set("Accept", acceptBrowser)
		h.Set("Accept-Language", acceptLanguage)
		if b.opts.Origin != "" {
			h.Set("Origin", b.opts.Origin)
		}
		if b.opts.Referer != "" {
			h.Set("Referer", b.opts.Referer)
		}
	case CategoryManifest:
		h.Set(HeaderRequestedWith, app.PackageName)
		if b.opts.ManifestHost != "" {
			h.Set("Host", b.opts.ManifestHost)
		}
	case CategoryDeviceAudit:
		h.Set(HeaderIMEI, device.IMEI)
		h.Set(HeaderSerial, device.SerialNumber)
		h.Set(HeaderInstallation, device.InstallationID)
	}

	req := &Request{
		Category: category,
		Headers:  h,
		Warnings: check(category, device, app, username, token),
	}
	for _, w := range req.Warnings {
		slog.Warn("ヘッダー整合性警告",
			"event_id", "HEADER_CONSISTENCY_WARN",
			"activity_id", activityID,
			"category", string(w.Category),
			"field", w.Field,
			"detail", w.Message,
		)
	}
	return req
}

// check は送信前の整合性検査を行う。
func check(category Category, device model.DeviceIdentity, app model.AppIdentity, username, token string) []ConsistencyWarning {
	var warnings []ConsistencyWarning
	for _, f := range device.MissingFields() {
		warnings = append(warnings, ConsistencyWarning{Category: category, Field: "device." + f, Message: "is empty"})
	}
	if app.Societe == "" {
		warnings = append(warnings, ConsistencyWarning{Category: category, Field: "app.societe", Message: "is empty"})
	}
	if category.requiresUsername() && username == "" {
		warnings = append(warnings, ConsistencyWarning{Category: category, Field: "username", Message: "missing for authenticated endpoint"})
	}
	if category.requiresToken() && token == "" {
		warnings = append(warnings, ConsistencyWarning{Category: category, Field: "token", Message: "missing for authenticated endpoint"})
	}
	return warnings
}

func userAgent(osVersion, deviceModel string) string {
	return fmt.Sprintf("Dalvik/2.1.0 (Linux; U; Android %s; %s)", osVersion, deviceModel)
}

var parenthesized = regexp.MustCompile(`\([^)]*\)`)

// CleanOSVersion はOSバージョン文字列から装飾を除去する。
// 例: "Android 13 (TP1A.220624.014)" → "13"
func CleanOSVersion(raw string) string {
	s := parenthesized.ReplaceAllString(raw, "")
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"Android", "OS"} {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = strings.TrimSpace(s[len(prefix):])
		}
	}
	return s
}

// CleanUsername はテナント接頭辞を除いたユーザー名を返す。
// 例: "PCP0010699_A187518" → "A187518"
func CleanUsername(username, societe string) string {
	if societe != "" && strings.HasPrefix(username, societe+"_") {
		return username[len(societe)+1:]
	}
	if i := strings.LastIndex(username, "_"); i >= 0 && i < len(username)-1 {
		return username[i+1:]
	}
	return username
}
