package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the rentbill configuration.
type Config struct {
	Billing   BillingConfig   `yaml:"billing"`
	Messaging MessagingConfig `yaml:"messaging"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// BillingConfig holds the tariff and receipt output settings.
type BillingConfig struct {
	WaterRate     float64 `yaml:"water_rate"` // KES per cubic meter
	PaybillNumber string  `yaml:"paybill_number"`
	AccountPrefix string  `yaml:"account_prefix"`
	Currency      string  `yaml:"currency"`
	BillsDir      string  `yaml:"bills_dir"`
}

// MessagingConfig holds SMS provider settings. Empty credentials fall back to prompts.
type MessagingConfig struct {
	Username   string `yaml:"username"`
	APIKey     string `yaml:"api_key"`
	SenderID   string `yaml:"sender_id"`
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"` // negative = wait forever
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // node_exporter textfile collector target, empty = off
}

// Load reads configuration from config/<env>.yaml. A missing file yields defaults.
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)
	if !fileExists(configPath) {
		cfg := Config{}
		cfg.ApplyDefaults()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile reads configuration from an explicit YAML path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env") into the
// process environment. Missing files are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Billing.WaterRate <= 0 {
		c.Billing.WaterRate = 200
	}
	if c.Billing.PaybillNumber == "" {
		c.Billing.PaybillNumber = "522533"
	}
	if c.Billing.AccountPrefix == "" {
		c.Billing.AccountPrefix = "7944442"
	}
	if c.Billing.Currency == "" {
		c.Billing.Currency = "KES"
	}
	if c.Billing.BillsDir == "" {
		c.Billing.BillsDir = "bills"
	}
	if c.Messaging.TimeoutSec == 0 {
		c.Messaging.TimeoutSec = 30
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Billing.PaybillNumber) == "" {
		return fmt.Errorf("billing.paybill_number is required")
	}
	if c.Messaging.BaseURL != "" {
		u, err := url.Parse(c.Messaging.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("messaging.base_url must be an absolute URL, got %q", c.Messaging.BaseURL)
		}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
		// ok
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
