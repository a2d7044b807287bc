package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(t.TempDir())

	require.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	c, err := LoadConfig(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "8080", c.HTTPPort)
	assert.Equal(t, 30*time.Minute, c.DelayThreshold)
	assert.Equal(t, "@every 1m", c.DelayCheckSpec)
	assert.Empty(t, c.AutoDispatchSpec)
	assert.Empty(t, c.Brokers())
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=dispatch sslmode=disable", c.DSN())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DELAY_THRESHOLD", "45m")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")

	c, err := LoadConfig(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, c.DelayThreshold)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Brokers())
}

func TestLoadConfig_DotEnvFillsGaps(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("JWT_SECRET=from-file\nDISPATCH_TEST_ONLY=1\nHTTP_PORT=9090\n"), 0o600))
	t.Setenv("HTTP_PORT", "7070")
	t.Cleanup(func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("DISPATCH_TEST_ONLY")
	})
	os.Unsetenv("JWT_SECRET")

	c, err := LoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, "from-file", c.JWTSecret)
	assert.Equal(t, "7070", c.HTTPPort)
}
