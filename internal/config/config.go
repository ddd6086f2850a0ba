package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
)

type ServerConfig struct {
	RunAddr          string        `env:"SERVER_ADDRESS" json:"server_address"`
	BaseURL          string        `env:"BASE_URL" json:"base_url"`
	MetadataTimeout  time.Duration `env:"METADATA_TIMEOUT" json:"metadata_timeout"`
	MetadataCacheTTL time.Duration `env:"METADATA_CACHE_TTL" json:"metadata_cache_ttl"`
	TLSCertPath      string        `env:"TLS_CERT_PATH" json:"tls_cert_path"`
	TLSKeyPath       string        `env:"TLS_KEY_PATH" json:"tls_key_path"`
	Config           string        `env:"CONFIG" json:"-"`
	EnableHTTPS      bool          `env:"ENABLE_HTTPS" json:"enable_https"`
	ProfileMode      bool          `env:"PROFILE_MODE" json:"profile_mode"`
}

var config ServerConfig

func ParseFlags() (*ServerConfig, error) {
	flag.StringVar(&config.RunAddr, "a", ":8080", "address and port to run server")
	flag.StringVar(&config.BaseURL, "b", "http://localhost:8080", "public base URL used to build interstitial links")
	flag.DurationVar(&config.MetadataTimeout, "t", 3*time.Second, "oEmbed lookup budget")
	flag.DurationVar(&config.MetadataCacheTTL, "l", time.Hour, "metadata cache lifetime")
	flag.StringVar(&config.TLSCertPath, "cert", "./certs/cert.pem", "TLS certificate path")
	flag.StringVar(&config.TLSKeyPath, "key", "./certs/private.pem", "TLS private key path")
	flag.StringVar(&config.Config, "c", "", "JSON config file path")
	flag.BoolVar(&config.EnableHTTPS, "s", false, "enable HTTPS")
	flag.BoolVar(&config.ProfileMode, "p", false, "register pprof endpoints")
	flag.Parse()

	if config.Config != "" {
		if err := applyConfigFile(config.Config, &config); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("error parsing env variables: %w", err)
	}

	return &config, nil
}

// applyConfigFile overlays values from a JSON file onto cfg. Explicit
// flags and env vars win over the file, so only fields still at their
// defaults are replaced.
func applyConfigFile(path string, cfg *ServerConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	var fileCfg ServerConfig
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}

	defaults := ServerConfig{
		RunAddr:          ":8080",
		BaseURL:          "http://localhost:8080",
		MetadataTimeout:  3 * time.Second,
		MetadataCacheTTL: time.Hour,
		TLSCertPath:      "./certs/cert.pem",
		TLSKeyPath:       "./certs/private.pem",
	}

	if cfg.RunAddr == defaults.RunAddr && fileCfg.RunAddr != "" {
		cfg.RunAddr = fileCfg.RunAddr
	}
	if cfg.BaseURL == defaults.BaseURL && fileCfg.BaseURL != "" {
		cfg.BaseURL = fileCfg.BaseURL
	}
	if cfg.MetadataTimeout == defaults.MetadataTimeout && fileCfg.MetadataTimeout != 0 {
		cfg.MetadataTimeout = fileCfg.MetadataTimeout
	}
	if cfg.MetadataCacheTTL == defaults.MetadataCacheTTL && fileCfg.MetadataCacheTTL != 0 {
		cfg.MetadataCacheTTL = fileCfg.MetadataCacheTTL
	}
	if cfg.TLSCertPath == defaults.TLSCertPath && fileCfg.TLSCertPath != "" {
		cfg.TLSCertPath = fileCfg.TLSCertPath
	}
	if cfg.TLSKeyPath == defaults.TLSKeyPath && fileCfg.TLSKeyPath != "" {
		cfg.TLSKeyPath = fileCfg.TLSKeyPath
	}
	if fileCfg.EnableHTTPS {
		cfg.EnableHTTPS = true
	}
	if fileCfg.ProfileMode {
		cfg.ProfileMode = true
	}

	return nil
}
