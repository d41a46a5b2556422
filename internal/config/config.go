// Package config resolves server settings from defaults, an optional YAML
// file, KALAKRUTI_WEB_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"kalakrutiassociates.com/web/internal/inquiry"
	"kalakrutiassociates.com/web/internal/nav"
)

// EnvPrefix namespaces environment overrides: KALAKRUTI_WEB_BASE_URL etc.
const EnvPrefix = "KALAKRUTI_WEB"

// Config is the resolved server configuration.
type Config struct {
	Addr         string        `mapstructure:"addr"`
	BaseURL      string        `mapstructure:"base_url"`
	TemplatesDir string        `mapstructure:"templates_dir"`
	PublicDir    string        `mapstructure:"public_dir"`
	ContentDir   string        `mapstructure:"content_dir"`
	Dev          bool          `mapstructure:"dev"`
	Env          string        `mapstructure:"env"`
	SessionKey   string        `mapstructure:"session_key"`
	SubmitDelay  time.Duration `mapstructure:"submit_delay"`
	LogLevel     string        `mapstructure:"log_level"`
	Analytics    Analytics     `mapstructure:"analytics"`
}

// Analytics holds client instrumentation ids surfaced to templates.
type Analytics struct {
	GA4 string `mapstructure:"ga4"`
	GTM string `mapstructure:"gtm"`
}

// Prod reports whether the server runs in production (Secure cookies).
func (c Config) Prod() bool { return strings.EqualFold(c.Env, "prod") }

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("base_url", nav.BaseURL)
	v.SetDefault("templates_dir", "templates")
	v.SetDefault("public_dir", "public")
	v.SetDefault("content_dir", "")
	v.SetDefault("dev", false)
	v.SetDefault("env", "dev")
	v.SetDefault("session_key", "")
	v.SetDefault("submit_delay", inquiry.DefaultDelay)
	v.SetDefault("log_level", "info")
	v.SetDefault("analytics.ga4", "")
	v.SetDefault("analytics.gtm", "")
}

// RegisterFlags declares the flags Load understands on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default is ./config.yaml when present)")
	fs.String("addr", ":8080", "HTTP listen address")
	fs.String("base-url", nav.BaseURL, "public origin used for canonical links")
	fs.String("templates", "templates", "templates directory")
	fs.String("public", "public", "public assets directory")
	fs.String("content", "", "content directory (default: embedded content)")
	fs.Bool("dev", false, "reparse templates when they change")
	fs.Duration("submit-delay", inquiry.DefaultDelay, "simulated contact submission delay")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
}

var flagKeys = map[string]string{
	"addr":         "addr",
	"base-url":     "base_url",
	"templates":    "templates_dir",
	"public":       "public_dir",
	"content":      "content_dir",
	"dev":          "dev",
	"submit-delay": "submit_delay",
	"log-level":    "log_level",
}

// Load resolves the configuration. fs may be nil; only flags the user set
// override lower layers.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	var cfgFile string
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			cfgFile = f.Value.String()
		}
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return Config{}, fmt.Errorf("config: read %s: %w", cfgFile, err)
		}
	}

	// Cloud Run injects PORT; an explicit KALAKRUTI_WEB_ADDR still wins.
	if port := os.Getenv("PORT"); port != "" && os.Getenv(EnvPrefix+"_ADDR") == "" && !v.InConfig("addr") {
		v.Set("addr", ":"+port)
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("config: bind %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("config: addr is required")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("config: base_url %q must be an absolute http(s) URL", c.BaseURL)
	}
	if c.SubmitDelay < 0 {
		return fmt.Errorf("config: submit_delay %s is negative", c.SubmitDelay)
	}
	if c.Prod() && c.SessionKey == "" {
		return errors.New("config: session_key is required when env is prod")
	}
	return nil
}
