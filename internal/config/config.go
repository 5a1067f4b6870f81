package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration. Fields missing from the file keep
// their defaults.
type Config struct {
	Addr       string `yaml:"addr"`
	WebDir     string `yaml:"web_dir"`
	LevelsFile string `yaml:"levels_file"` // empty = built-in catalog

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // json | console

	EnemyTurnStartMs   int `yaml:"enemy_turn_start_ms"`
	EnemyPreviewMs     int `yaml:"enemy_preview_ms"`
	EnemyAfterActionMs int `yaml:"enemy_after_action_ms"`

	SessionTTL time.Duration `yaml:"session_ttl"`
}

func Default() Config {
	return Config{
		Addr:               ":2888",
		WebDir:             "./web",
		LogLevel:           "info",
		LogFormat:          "console",
		EnemyTurnStartMs:   400,
		EnemyPreviewMs:     780,
		EnemyAfterActionMs: 520,
		SessionTTL:         2 * time.Hour,
	}
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := loadYAML(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is empty"))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log_format %q: want json or console", c.LogFormat))
	}
	if c.EnemyTurnStartMs < 0 || c.EnemyPreviewMs < 0 || c.EnemyAfterActionMs < 0 {
		errs = append(errs, errors.New("enemy delays must not be negative"))
	}
	if c.SessionTTL < 0 {
		errs = append(errs, errors.New("session_ttl must not be negative"))
	}
	return errors.Join(errs...)
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

func (c Config) EnemyTurnStart() time.Duration   { return ms(c.EnemyTurnStartMs) }
func (c Config) EnemyPreview() time.Duration     { return ms(c.EnemyPreviewMs) }
func (c Config) EnemyAfterAction() time.Duration { return ms(c.EnemyAfterActionMs) }
