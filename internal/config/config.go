// Package config loads intake service configuration from defaults, an
// optional YAML file, and INTAKE_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Discord   DiscordConfig   `mapstructure:"discord"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Intake    IntakeConfig    `mapstructure:"intake"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

// DiscordConfig holds the destination webhook. The URL has no default;
// leaving it empty surfaces as a 500 on submit, never a silent no-op.
type DiscordConfig struct {
	WebhookURL string        `mapstructure:"webhook_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type RateLimitConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxRequests int           `mapstructure:"max_requests"`
	Window      time.Duration `mapstructure:"window"`
}

// IntakeConfig gates which submissions are accepted. AllowedOrigins is the
// referer allow-list; CutoffDate closes applications when EnforceCutoff is
// set (by default the cutoff stays advisory, enforced only by the form UI).
type IntakeConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	CutoffDate     string   `mapstructure:"cutoff_date"`
	EnforceCutoff  bool     `mapstructure:"enforce_cutoff"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Cutoff parses the configured cutoff instant.
func (c *IntakeConfig) Cutoff() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, c.CutoffDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cutoff date %q: %w", c.CutoffDate, err)
	}
	return t, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8787)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("discord.webhook_url", "")
	v.SetDefault("discord.timeout", "10s")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.max_requests", 5)
	v.SetDefault("rate_limit.window", "1h")
	v.SetDefault("intake.allowed_origins", []string{
		"http://localhost:5173",
		"http://localhost:3000",
		"https://brockcsc.ca",
		"https://volunteer.brockcsc.ca",
	})
	v.SetDefault("intake.cutoff_date", "2025-09-22T00:00:00-04:00")
	v.SetDefault("intake.enforce_cutoff", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Load reads configuration from the given file path (optional), with
// environment variables overriding file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/volunteer-intake")
	}

	v.SetEnvPrefix("INTAKE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults are static; a failure here is a programming error.
		panic(fmt.Sprintf("unmarshal default config: %v", err))
	}
	return &cfg
}

// Save writes the configuration as YAML, with durations rendered in their
// human-readable form so the file can be loaded back.
func (c *Config) Save(path string) error {
	out := map[string]any{
		"server": map[string]any{
			"port":          c.Server.Port,
			"read_timeout":  c.Server.ReadTimeout.String(),
			"write_timeout": c.Server.WriteTimeout.String(),
			"idle_timeout":  c.Server.IdleTimeout.String(),
		},
		"redis": map[string]any{
			"url":     c.Redis.URL,
			"enabled": c.Redis.Enabled,
		},
		"discord": map[string]any{
			"webhook_url": c.Discord.WebhookURL,
			"timeout":     c.Discord.Timeout.String(),
		},
		"rate_limit": map[string]any{
			"enabled":      c.RateLimit.Enabled,
			"max_requests": c.RateLimit.MaxRequests,
			"window":       c.RateLimit.Window.String(),
		},
		"intake": map[string]any{
			"allowed_origins": c.Intake.AllowedOrigins,
			"cutoff_date":     c.Intake.CutoffDate,
			"enforce_cutoff":  c.Intake.EnforceCutoff,
		},
		"logging": map[string]any{
			"level":  c.Logging.Level,
			"format": c.Logging.Format,
		},
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}
