package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is read from the environment. A .env file, when present, fills in variables
// the environment does not set.
//
// Tags:
//   - mapstructure: the environment variable
//   - default: value used when the variable is unset
//   - required: "true" fails loading when the value is empty
type Config struct {
	Environment string `mapstructure:"APP_ENV" default:"development"`
	LogLevel    string `mapstructure:"LOG_LEVEL" default:"info"`
	HTTPPort    string `mapstructure:"HTTP_PORT" default:"8080"`

	DBHost     string `mapstructure:"DB_HOST" default:"localhost"`
	DBPort     string `mapstructure:"DB_PORT" default:"5432"`
	DBUser     string `mapstructure:"DB_USER" default:"postgres"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME" default:"dispatch"`
	DBSslMode  string `mapstructure:"DB_SSLMODE" default:"disable"`

	// RedisURL enables the courier position cache, e.g. redis://localhost:6379/0.
	RedisURL string `mapstructure:"REDIS_URL"`

	// KafkaBrokers is a comma-separated list; empty disables the change feed.
	KafkaBrokers          string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderEventsTopic string `mapstructure:"KAFKA_ORDER_EVENTS_TOPIC" default:"dispatch.events"`

	// JWTSecret verifies the HS256 tokens issued by the auth service.
	JWTSecret string `mapstructure:"JWT_SECRET" required:"true"`

	DelayThreshold   time.Duration `mapstructure:"DELAY_THRESHOLD" default:"30m"`
	DelayCheckSpec   string        `mapstructure:"DELAY_CHECK_SPEC" default:"@every 1m"`
	AutoDispatchSpec string        `mapstructure:"AUTO_DISPATCH_SPEC"`
}

// LoadConfig reads dir/.env if it exists, then the environment.
func LoadConfig(dir string) (Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	t := reflect.TypeOf(Config{})
	for i := range t.NumField() {
		field := t.Field(i)
		key := field.Tag.Get("mapstructure")
		if err := v.BindEnv(key); err != nil {
			return Config{}, err
		}
		if def := field.Tag.Get("default"); def != "" {
			v.SetDefault(key, def)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	val := reflect.ValueOf(config)
	for i := range t.NumField() {
		if t.Field(i).Tag.Get("required") == "true" && val.Field(i).IsZero() {
			return Config{}, fmt.Errorf("missing required configuration: %s", t.Field(i).Tag.Get("mapstructure"))
		}
	}

	return config, nil
}

// DSN is the libpq connection string for gorm's postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Brokers splits KafkaBrokers, dropping blanks.
func (c Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
