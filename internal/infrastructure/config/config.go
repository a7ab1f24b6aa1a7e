package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo      MongoConfig
	Redis      RedisConfig
	SMS        SMSConfig
	Superadmin SuperadminConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=nutrition_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMSConfig struct {
	BaseURL  string `env:"SMS_BASE_URL, default=http://api.smsfeedback.ru"`
	Login    string `env:"SMS_LOGIN"`
	Password string `env:"SMS_PASSWORD"`
	Sender   string `env:"SMS_SENDER"`
}

// SuperadminConfig seeds the initial back-office account. Bootstrap is
// skipped when either value is empty.
type SuperadminConfig struct {
	Username string `env:"SUPERADMIN_USERNAME"`
	Password string `env:"SUPERADMIN_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
