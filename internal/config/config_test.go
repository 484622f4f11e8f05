package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, "application/json", cfg.TMDB.ContentType)
	assert.Equal(t, "Movie Trend", cfg.Telex.Username)
	assert.Equal(t, "Trending Movies Fetch", cfg.Telex.EventName)
	assert.Equal(t, 10, cfg.Schedule.NumMovies)
	assert.False(t, cfg.Schedule.Enabled)
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 30, cfg.TMDB.Timeout)
	assert.Equal(t, "https://www.themoviedb.org/", cfg.Site.RedirectURL)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
  public_url: https://movietrend.example
tmdb:
  bearer_token: from-file
schedule:
  enabled: true
  return_url: https://ping.telex.im/v1/return/abc
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("MOVIETREND_TMDB_BEARER_TOKEN", "from-env")
	t.Setenv("MOVIETREND_LOGGING_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://movietrend.example", cfg.Server.PublicURL)
	assert.Equal(t, "from-env", cfg.TMDB.BearerToken)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Schedule.Enabled)
	assert.Equal(t, "https://ping.telex.im/v1/return/abc", cfg.Schedule.ReturnURL)
	assert.Equal(t, "0 9 * * 1", cfg.Schedule.Cron)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MOVIETREND_TMDB_BEARER_TOKEN=dotenv-token\n"), 0o644))
	chdir(t, dir)
	// godotenv sets process env directly; register cleanup through t.Setenv.
	t.Setenv("MOVIETREND_TMDB_BEARER_TOKEN", "")
	require.NoError(t, os.Unsetenv("MOVIETREND_TMDB_BEARER_TOKEN"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-token", cfg.TMDB.BearerToken)
}

func TestServerConfig_Address(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 8000}
	assert.Equal(t, "127.0.0.1:8000", c.Address())
}
