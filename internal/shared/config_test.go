package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_booking/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TRAVEL_CONFIG", "")
	c, err := shared.Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, 2*time.Second, c.PaymentDelay)
	assert.Equal(t, 10, c.PageSize)
	assert.Equal(t, 30*time.Second, c.TelemetryFlushInterval)
	assert.Empty(t, c.MySQLDSN)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "travel.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_addr = ":9090"
page_size = 20
payment_delay = "500ms"
telemetry_flush_interval = "1m"
redis_addr = "cache:6379"
`), 0o600))
	t.Setenv("TRAVEL_CONFIG", path)
	t.Setenv("PAGE_SIZE", "5")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("TELEMETRY_FLUSH_INTERVAL", "0")

	c, err := shared.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", c.HTTPAddr)
	assert.Equal(t, "cache:6379", c.RedisAddr)
	assert.Equal(t, 500*time.Millisecond, c.PaymentDelay)
	assert.Equal(t, 5, c.PageSize, "env wins over file")
	assert.Equal(t, time.Minute, c.CacheTTL)
	assert.Equal(t, time.Duration(0), c.TelemetryFlushInterval)
	assert.Equal(t, "travel-api", c.JWTAudience, "untouched keys keep defaults")
}

func TestLoad_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`payment_delay = "soon"`), 0o600))
	t.Setenv("TRAVEL_CONFIG", path)
	_, err := shared.Load()
	assert.Error(t, err)

	t.Setenv("TRAVEL_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	_, err = shared.Load()
	assert.Error(t, err)
}
