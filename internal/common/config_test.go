package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"IMPORT_HEADER_SCAN_ROWS", "IMPORT_MAX_BLANK_ROWS",
		"EXPIRY_DEFAULT_TZ", "EXPIRY_SOON_HORIZON_DAYS",
		"DB_MAX_CONNS", "DB_MAX_CONN_LIFETIME",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, 10, cfg.Import.HeaderScanRows)
	assert.Equal(t, 25, cfg.Import.MaxBlankRows)
	assert.Equal(t, "UTC", cfg.Expiry.DefaultTimezone)
	assert.Equal(t, 7, cfg.Expiry.SoonHorizonDays)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.Equal(t, 30*time.Minute, cfg.Database.MaxConnLifetime)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/pickrun")
	t.Setenv("IMPORT_HEADER_SCAN_ROWS", "4")
	t.Setenv("EXPIRY_DEFAULT_TZ", "America/New_York")
	t.Setenv("DB_MAX_CONN_LIFETIME", "1h")
	t.Setenv("IMPORT_MAX_BLANK_ROWS", "not-a-number")

	cfg := LoadConfig()
	assert.Equal(t, "postgres://localhost/pickrun", cfg.Database.DSN)
	assert.Equal(t, 4, cfg.Import.HeaderScanRows)
	assert.Equal(t, "America/New_York", cfg.Expiry.DefaultTimezone)
	assert.Equal(t, time.Hour, cfg.Database.MaxConnLifetime)
	assert.Equal(t, 25, cfg.Import.MaxBlankRows, "unparseable values fall back to defaults")
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	cfg.Database.DSN = "postgres://localhost/pickrun"
	assert.NoError(t, cfg.Validate())
}
