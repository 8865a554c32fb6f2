// Package config はroute-adminの設定管理を提供する。
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config はroute-adminの設定を表す。
type Config struct {
	GatewayURL     string        `envconfig:"GATEWAY_URL" default:"http://127.0.0.1:8080"`
	AdminUser      string        `envconfig:"ADMIN_USER" default:"admin"`
	DefaultSociete string        `envconfig:"APP_SOCIETE" default:"PCP0010699"`
	RequestTimeout time.Duration `envconfig:"ADMIN_REQUEST_TIMEOUT" default:"5s"`
	HistoryLimit   int           `envconfig:"ADMIN_HISTORY_LIMIT" default:"20"`
	MaskDrivers    bool          `envconfig:"LOG_MASK_IDENTIFIERS" default:"true"`
}

// Load は環境変数から設定を読み込む。
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.GatewayURL = strings.TrimRight(cfg.GatewayURL, "/")
	if cfg.GatewayURL == "" {
		return nil, fmt.Errorf("GATEWAY_URL must not be empty")
	}
	if cfg.HistoryLimit < 0 || cfg.HistoryLimit > 100 {
		return nil, fmt.Errorf("ADMIN_HISTORY_LIMIT must be between 0 and 100: %d", cfg.HistoryLimit)
	}
	return &cfg, nil
}
