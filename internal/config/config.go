// Package config loads runtime configuration from an optional YAML file,
// environment variables and defaults, in ascending precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration for both binaries.
type Config struct {
	// Server settings.
	Addr string `mapstructure:"addr"`

	// LLM settings.
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	LLMTimeout  time.Duration `mapstructure:"llm_timeout"`
	Temperature float64       `mapstructure:"temperature"`

	// Weather settings.
	WeatherAPIKey  string        `mapstructure:"weather_api_key"`
	WeatherBaseURL string        `mapstructure:"weather_base_url"`
	WeatherTTL     time.Duration `mapstructure:"weather_ttl"`

	// Client settings.
	ServerURL string `mapstructure:"server_url"`

	// Device capability settings. Empty values mean "probe/derive".
	ContactsFile   string `mapstructure:"contacts_file"`
	CalendarDir    string `mapstructure:"calendar_dir"`
	CaptureCommand string `mapstructure:"capture_command"`
	SpeechCommand  string `mapstructure:"speech_command"`
	GeoURL         string `mapstructure:"geo_url"`

	// Logging.
	LogLevel string `mapstructure:"log_level"`
}

// Dir returns the per-user settings directory (~/.sentry), creating it
// on first use.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".sentry")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create settings directory: %w", err)
	}
	return dir, nil
}

// Load reads ~/.sentry/config.yaml (missing file is fine), then overlays
// SENTRY_* environment variables, then applies defaults for anything
// still unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := Dir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("SENTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// The Gemini SDK also honors its own env var; accept it as a
	// fallback so a stock Gemini setup needs no extra wiring.
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":3000")
	v.SetDefault("provider", "gemini")
	v.SetDefault("model", "gemini-2.5-flash")
	// Keys without a real default still need registering, or env-only
	// values never reach Unmarshal.
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", "")
	v.SetDefault("weather_api_key", "")
	v.SetDefault("weather_base_url", "")
	v.SetDefault("contacts_file", "")
	v.SetDefault("calendar_dir", "")
	v.SetDefault("capture_command", "")
	v.SetDefault("speech_command", "")
	v.SetDefault("geo_url", "")
	v.SetDefault("llm_timeout", 30*time.Second)
	v.SetDefault("temperature", 0.7)
	v.SetDefault("weather_ttl", 5*time.Minute)
	v.SetDefault("server_url", "http://localhost:3000")
	v.SetDefault("log_level", "info")
}
