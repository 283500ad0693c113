package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestMustLoad(t *testing.T) {
	t.Run("Reads values from the file", func(t *testing.T) {
		// Given: a config file with every section set
		path := writeConfig(t, `
log-level: debug
http-port: "8080"
redis:
  host: redis
  port: "6380"
bot:
  handle: SomeBot
  hashtag: SomeTag
  poll-interval: 30s
feed:
  base-url: http://feed.local
  timeout: 2s
`)

		// When: loading it
		conf := MustLoad(path)

		// Then: the values are applied
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, "SomeBot", conf.Bot.Handle)
		assert.Equal(t, "SomeTag", conf.Bot.Hashtag)
		assert.Equal(t, 30*time.Second, conf.Bot.PollInterval)
		assert.Equal(t, "http://feed.local", conf.Feed.BaseURL)
		assert.Equal(t, 2*time.Second, conf.Feed.Timeout)
	})

	t.Run("Falls back to defaults", func(t *testing.T) {
		// Given: an almost empty config file
		path := writeConfig(t, "log-level: info\n")

		// When: loading it
		conf := MustLoad(path)

		// Then: defaults are used
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, "TweetTacToeBot", conf.Bot.Handle)
		assert.Equal(t, time.Minute, conf.Bot.PollInterval)
		assert.Empty(t, conf.Feed.BaseURL)
	})

	t.Run("Panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}

func TestPath(t *testing.T) {
	t.Run("Uses the environment override", func(t *testing.T) {
		// Given: CONFIG_PATH is set
		t.Setenv(PathEnv, "/etc/tweettactoe/config.yml")

		// Then: it wins over the fallback
		assert.Equal(t, "/etc/tweettactoe/config.yml", Path("./config.yml"))
	})

	t.Run("Falls back when unset", func(t *testing.T) {
		t.Setenv(PathEnv, "")

		assert.Equal(t, "./config.yml", Path("./config.yml"))
	})
}
