// Package config は環境変数から設定を読み込む。
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/valkey"
	"github.com/kelseyhightower/envconfig"
)

// Config はRoute Gatewayの設定を保持する。
type Config struct {
	// Valkey接続設定
	RedisHost string `envconfig:"REDIS_HOST" required:"true"`
	RedisPort string `envconfig:"REDIS_PORT" required:"true"`
	RedisPass string `envconfig:"REDIS_PASS" default:""`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`

	// サーバー設定
	ListenAddr         string `envconfig:"LISTEN_ADDR" default:":8080"`
	LogLevel           string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogMaskIdentifiers bool   `envconfig:"LOG_MASK_IDENTIFIERS" default:"true"`
	GinMode            string `envconfig:"GIN_MODE" default:"release"`

	// キャリア接続先
	CarrierAuthURL    string `envconfig:"CARRIER_AUTH_URL" default:"https://wsauthentificationexterne.colisprive.com"`
	CarrierTourneeURL string `envconfig:"CARRIER_TOURNEE_URL" default:"https://wstournee-v2.colisprive.com"`
	CarrierMobileURL  string `envconfig:"CARRIER_MOBILE_URL" default:"https://wsmobile.colisprive.com"`
	CarrierLoggingURL string `envconfig:"CARRIER_LOGGING_URL" default:"https://wslog.colisprive.com"`

	// 認証系・マニフェスト取得の追加ヘッダー
	CarrierOrigin       string `envconfig:"CARRIER_ORIGIN" default:"https://gestiontournee.colisprive.com"`
	CarrierReferer      string `envconfig:"CARRIER_REFERER" default:"https://gestiontournee.colisprive.com/"`
	CarrierManifestHost string `envconfig:"CARRIER_MANIFEST_HOST" default:""`

	// 模擬アプリ情報
	AppPackageName string `envconfig:"APP_PACKAGE_NAME" default:"com.danem.cpdistriv2"`
	AppName        string `envconfig:"APP_NAME" default:"CP DISTRI V2"`
	AppVersion     string `envconfig:"APP_VERSION" default:"3.3.0.9"`
	AppVersionCode string `envconfig:"APP_VERSION_CODE" default:"1883"`
	AppSociete     string `envconfig:"APP_SOCIETE" default:"PCP0010699"`

	// LoggingAutomatico用Basic認証
	LoggingUser string `envconfig:"CARRIER_LOGGING_USER" default:"cpdistri"`
	LoggingPass string `envconfig:"CARRIER_LOGGING_PASS" default:""`

	// 端末プロファイル（空の場合はドライバー毎に合成）
	DeviceProfilePath string `envconfig:"DEVICE_PROFILE_PATH" default:""`

	// トークン有効時間（時間）
	TokenLifetimeHours int `envconfig:"TOKEN_LIFETIME_HOURS" default:"24"`

	// キャッシュ設定
	CacheTourneeTTL        time.Duration `envconfig:"CACHE_TOURNEE_TTL" default:"15m"`
	CacheJitterSpread      time.Duration `envconfig:"CACHE_JITTER_SPREAD" default:"3m"`
	CacheTTLFloor          time.Duration `envconfig:"CACHE_TTL_FLOOR" default:"10m"`
	CacheCamouflageEnabled bool          `envconfig:"CACHE_CAMOUFLAGE_ENABLED" default:"false"`
	DecoyInterval          time.Duration `envconfig:"CACHE_DECOY_INTERVAL" default:"5m"`
	DecoyCount             int           `envconfig:"CACHE_DECOY_COUNT" default:"5"`
	CleanupInterval        time.Duration `envconfig:"CACHE_CLEANUP_INTERVAL" default:"10m"`

	// マイグレーション設定
	MigrationInitialStrategy      string        `envconfig:"MIGRATION_INITIAL_STRATEGY" default:"web_only"`
	MigrationAutoProgression      bool          `envconfig:"MIGRATION_AUTO_PROGRESSION" default:"false"`
	MigrationProgressionThreshold float64       `envconfig:"MIGRATION_PROGRESSION_THRESHOLD" default:"0.95"`
	MigrationRollbackThreshold    float64       `envconfig:"MIGRATION_ROLLBACK_THRESHOLD" default:"0.90"`
	MigrationMinSamples           int64         `envconfig:"MIGRATION_MIN_SAMPLES" default:"100"`
	MigrationSyncInterval         time.Duration `envconfig:"MIGRATION_SYNC_INTERVAL" default:"30s"`

	// フロー全体のリトライ設定（1は再試行なし）
	RetryMaxAttempts int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"1"`
	RetryBaseDelay   time.Duration `envconfig:"RETRY_BASE_DELAY" default:"500ms"`
	RetryMaxDelay    time.Duration `envconfig:"RETRY_MAX_DELAY" default:"5s"`

	// InfluxDB（URL未設定の場合はメトリクス送信を無効化）
	InfluxURL             string        `envconfig:"INFLUX_URL" default:""`
	InfluxToken           string        `envconfig:"INFLUX_TOKEN" default:""`
	InfluxOrg             string        `envconfig:"INFLUX_ORG" default:""`
	InfluxBucket          string        `envconfig:"INFLUX_BUCKET" default:""`
	MetricsReportInterval time.Duration `envconfig:"METRICS_REPORT_INTERVAL" default:"1m"`
}

// Load は環境変数から設定を読み込む。
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// ValkeyAddr はValkey接続アドレスを "host:port" 形式で返す。
func (c *Config) ValkeyAddr() string {
	return valkey.BuildAddr(c.RedisHost, c.RedisPort)
}

// App は模擬対象のアプリ情報を返す。
func (c *Config) App() model.AppIdentity {
	return model.AppIdentity{
		PackageName: c.AppPackageName,
		Name:        c.AppName,
		Version:     c.AppVersion,
		VersionCode: c.AppVersionCode,
		Societe:     c.AppSociete,
	}
}

// InfluxEnabled はメトリクス送信が有効かどうかを返す。
func (c *Config) InfluxEnabled() bool {
	return c.InfluxURL != ""
}

// validate は設定値のバリデーションを行う。
func (c *Config) validate() error {
	urls := map[string]string{
		"CARRIER_AUTH_URL":    c.CarrierAuthURL,
		"CARRIER_TOURNEE_URL": c.CarrierTourneeURL,
		"CARRIER_MOBILE_URL":  c.CarrierMobileURL,
		"CARRIER_LOGGING_URL": c.CarrierLoggingURL,
	}
	for name, u := range urls {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("%s must start with http:// or https://", name)
		}
	}
	if strings.TrimSpace(c.AppSociete) == "" {
		return fmt.Errorf("APP_SOCIETE must not be empty")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must not be negative")
	}
	if c.TokenLifetimeHours <= 0 {
		return fmt.Errorf("TOKEN_LIFETIME_HOURS must be positive")
	}
	if c.CacheTourneeTTL <= 0 || c.CacheTTLFloor <= 0 {
		return fmt.Errorf("CACHE_TOURNEE_TTL and CACHE_TTL_FLOOR must be positive")
	}
	if c.CacheJitterSpread < 0 {
		return fmt.Errorf("CACHE_JITTER_SPREAD must not be negative")
	}
	if c.MigrationRollbackThreshold < 0 || c.MigrationProgressionThreshold > 1 {
		return fmt.Errorf("migration thresholds must be within [0, 1]")
	}
	if c.MigrationRollbackThreshold >= c.MigrationProgressionThreshold {
		return fmt.Errorf("MIGRATION_ROLLBACK_THRESHOLD must be lower than MIGRATION_PROGRESSION_THRESHOLD")
	}
	if c.MigrationMinSamples <= 0 {
		return fmt.Errorf("MIGRATION_MIN_SAMPLES must be positive")
	}
	if c.RetryMaxAttempts < 1 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1")
	}
	if c.InfluxEnabled() && (c.InfluxOrg == "" || c.InfluxBucket == "") {
		return fmt.Errorf("INFLUX_ORG and INFLUX_BUCKET are required when INFLUX_URL is set")
	}
	return nil
}
