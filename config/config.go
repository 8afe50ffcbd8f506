package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string        `mapstructure:"PORT"`
	GRPCPort       string        `mapstructure:"GRPC_PORT"`
	StorageDriver  string        `mapstructure:"STORAGE_DRIVER"`
	DataDir        string        `mapstructure:"DATA_DIR"`
	BadgerPath     string        `mapstructure:"BADGER_PATH"`
	BadgerInMemory bool          `mapstructure:"BADGER_IN_MEMORY"`
	DBHost         string        `mapstructure:"DB_HOST"`
	DBPort         string        `mapstructure:"DB_PORT"`
	DBUser         string        `mapstructure:"DB_USER"`
	DBPassword     string        `mapstructure:"DB_PASSWORD"`
	DBName         string        `mapstructure:"DB_NAME"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	CacheTTL       time.Duration `mapstructure:"CACHE_TTL"`
	RateLimit      int           `mapstructure:"RATE_LIMIT"`
	RateWindow     time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	AllowedOrigins string        `mapstructure:"ALLOWED_ORIGINS"`
	AccessSecret   string        `mapstructure:"ACCESS_SECRET"`
	APIKeyHash     string        `mapstructure:"API_KEY_HASH"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	LogFormat      string        `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]any{
	"PORT":              ":8080",
	"GRPC_PORT":         "",
	"STORAGE_DRIVER":    "file",
	"DATA_DIR":          "./data",
	"BADGER_PATH":       "./data/badger",
	"BADGER_IN_MEMORY":  false,
	"DB_HOST":           "localhost",
	"DB_PORT":           "5432",
	"DB_USER":           "postgres",
	"DB_PASSWORD":       "",
	"DB_NAME":           "coursehub",
	"REDIS_ADDR":        "",
	"CACHE_TTL":         "60s",
	"RATE_LIMIT":        100,
	"RATE_LIMIT_WINDOW": "15m",
	"ALLOWED_ORIGINS":   "*",
	"ACCESS_SECRET":     "",
	"API_KEY_HASH":      "",
	"LOG_LEVEL":         "info",
	"LOG_FORMAT":        "text",
}

// LoadConfig reads app.env from path when present; environment variables
// always win over the file.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err = v.BindEnv(key); err != nil {
			return
		}
	}

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}
	err = config.validate()
	return
}

func (c Config) validate() error {
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT must be positive, got %d", c.RateLimit)
	}
	if c.RateWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateWindow)
	}
	return nil
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
