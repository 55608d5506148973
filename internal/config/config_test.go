package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, 200.0, cfg.Billing.WaterRate)
	assert.Equal(t, "522533", cfg.Billing.PaybillNumber)
	assert.Equal(t, "7944442", cfg.Billing.AccountPrefix)
	assert.Equal(t, "KES", cfg.Billing.Currency)
	assert.Equal(t, "bills", cfg.Billing.BillsDir)
	assert.Equal(t, 30, cfg.Messaging.TimeoutSec)
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		Billing: BillingConfig{
			WaterRate:     150,
			PaybillNumber: "400200",
			AccountPrefix: "1111",
			Currency:      "UGX",
			BillsDir:      "/tmp/out",
		},
		Messaging: MessagingConfig{TimeoutSec: -1},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, 150.0, cfg.Billing.WaterRate)
	assert.Equal(t, "400200", cfg.Billing.PaybillNumber)
	assert.Equal(t, "1111", cfg.Billing.AccountPrefix)
	assert.Equal(t, "UGX", cfg.Billing.Currency)
	assert.Equal(t, "/tmp/out", cfg.Billing.BillsDir)
	assert.Equal(t, -1, cfg.Messaging.TimeoutSec)
}

func TestValidate_InvalidBaseURL(t *testing.T) {
	cfg := Config{Messaging: MessagingConfig{BaseURL: "not a url"}}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "messaging.base_url")
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := Config{Logging: LoggingConfig{Level: "verbose"}}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, `logging.level must be one of debug, info, warn, error, got "verbose"`, err.Error())
}

func TestValidate_Defaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile_ExpandsEnv(t *testing.T) {
	t.Setenv("RENTBILL_TEST_USER", "sandbox")
	path := writeFile(t, t.TempDir(), "test.yaml", `
billing:
  water_rate: 250
  bills_dir: out
messaging:
  username: ${RENTBILL_TEST_USER}
  api_key: ${RENTBILL_TEST_KEY:-fallback-key}
  base_url: http://localhost:9999
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 250.0, cfg.Billing.WaterRate)
	assert.Equal(t, "out", cfg.Billing.BillsDir)
	assert.Equal(t, "522533", cfg.Billing.PaybillNumber)
	assert.Equal(t, "sandbox", cfg.Messaging.Username)
	assert.Equal(t, "fallback-key", cfg.Messaging.APIKey)
	assert.Equal(t, "http://localhost:9999", cfg.Messaging.BaseURL)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_Malformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "billing: [unterminated")
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoad_MissingEnvFileYieldsDefaults(t *testing.T) {
	cfg, err := Load("no-such-environment")
	require.NoError(t, err)
	assert.Equal(t, "bills", cfg.Billing.BillsDir)
	assert.Equal(t, 200.0, cfg.Billing.WaterRate)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "RENTBILL_DOTENV_KEY=from-file\n")
	t.Setenv("RENTBILL_DOTENV_KEY", "")
	require.NoError(t, os.Unsetenv("RENTBILL_DOTENV_KEY"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("RENTBILL_DOTENV_KEY"))
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".env", "RENTBILL_DOTENV_SET=from-file\n")
	t.Setenv("RENTBILL_DOTENV_SET", "from-env")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-env", os.Getenv("RENTBILL_DOTENV_SET"))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	assert.Equal(t, "local", GetEnv())

	t.Setenv("ENV", "prod")
	assert.Equal(t, "prod", GetEnv())
}
