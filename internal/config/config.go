package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// PathEnv - overrides the config file location, for running the bot outside its directory.
const PathEnv = "CONFIG_PATH"

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis  `yaml:"redis"`
	Bot      Bot    `yaml:"bot"`
	Feed     Feed   `yaml:"feed"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Bot struct {
	Handle       string        `yaml:"handle" env:"BOT_HANDLE" env-default:"TweetTacToeBot"`
	Hashtag      string        `yaml:"hashtag" env:"BOT_HASHTAG" env-default:"TweetTacToe"`
	PollInterval time.Duration `yaml:"poll-interval" env:"BOT_POLL_INTERVAL" env-default:"1m"`
}

// Feed - the social feed API. Polling is disabled while BaseURL is empty.
type Feed struct {
	BaseURL string        `yaml:"base-url" env:"FEED_BASE_URL" env-default:""`
	Timeout time.Duration `yaml:"timeout" env:"FEED_TIMEOUT" env-default:"10s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Path - the config file named by CONFIG_PATH, or fallback when it is unset.
func Path(fallback string) string {
	if path := os.Getenv(PathEnv); path != "" {
		return path
	}

	return fallback
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
