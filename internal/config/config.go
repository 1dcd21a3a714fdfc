package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	PromoStoreMemory = "memory"
	PromoStoreRedis  = "redis"
)

type Config struct {
	LogLevel  string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort  string   `yaml:"http-port" env:"PORT" env-default:"3000"`
	PublicDir string   `yaml:"public-dir" env:"PUBLIC_DIR" env-default:"./public"`
	Game      Game     `yaml:"game"`
	Telegram  Telegram `yaml:"telegram"`
	Promo     Promo    `yaml:"promo"`
	Redis     Redis    `yaml:"redis"`
}

type Game struct {
	OpponentDelay time.Duration `yaml:"opponent-delay" env:"OPPONENT_DELAY" env-default:"420ms"`
}

type Telegram struct {
	APIURL   string        `yaml:"api-url" env:"TELEGRAM_API_URL" env-default:"https://api.telegram.org"`
	BotToken string        `yaml:"bot-token" env:"BOT_TOKEN"`
	ChatID   string        `yaml:"chat-id" env:"CHAT_ID"`
	Timeout  time.Duration `yaml:"timeout" env:"TELEGRAM_TIMEOUT" env-default:"10s"`
}

type Promo struct {
	Store string        `yaml:"store" env:"PROMO_STORE" env-default:"memory"`
	TTL   time.Duration `yaml:"ttl" env:"PROMO_TTL" env-default:"1h"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - loads config.yml when it exists and the environment on top of it.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
