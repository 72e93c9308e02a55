package configs

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"simple_cart/configs/loader"
	"simple_cart/pkg/validation"
)

const (
	StorageSession = "session"
	StorageCookie  = "cookie"
)

type HttpConfig struct {
	Port         string        `validate:"required,numeric"`
	MetricsPort  string        `validate:"required,numeric"`
	ReadTimeout  time.Duration `validate:"gt=0"`
	WriteTimeout time.Duration `validate:"gt=0"`
	IdleTimeout  time.Duration `validate:"gt=0"`
}

type CartConfig struct {
	Storage       string `validate:"oneof=session cookie"`
	Key           string `validate:"required,cookie_name"`
	SessionCookie string `validate:"required,cookie_name,nefield=Key"`
	// CookieHashKey signs the cart cookie; a random key is generated when empty.
	CookieHashKey string
	// CookieBlockKey enables cookie encryption when set.
	CookieBlockKey string `validate:"omitempty,len=16|len=24|len=32"`
	CookieMaxAge   int    `validate:"gte=0"`
}

type RedisConfig struct {
	Enabled      bool
	Host         string `validate:"required_if=Enabled true"`
	DB           int    `validate:"gte=0"`
	Password     string
	Prefix       string
	MaxRetries   int           `validate:"gte=0"`
	DialTimeout  time.Duration `validate:"gt=0"`
	ReadTimeout  time.Duration `validate:"gt=0"`
	WriteTimeout time.Duration `validate:"gt=0"`
	TTL          time.Duration `validate:"gte=0"`
}

type DBConfig struct {
	Enabled        bool
	User           string        `validate:"required_if=Enabled true"`
	Password       string        `validate:"required_if=Enabled true"`
	Name           string        `validate:"required_if=Enabled true"`
	Host           string        `validate:"required_if=Enabled true"`
	Port           string        `validate:"required_if=Enabled true"`
	ConnectTimeout time.Duration `validate:"gt=0"`
	Retries        int           `validate:"gt=0"`
}

type KafkaConfig struct {
	Enabled              bool
	BootstrapServers     string `validate:"required_if=Enabled true"`
	Topic                string `validate:"required"`
	ConsumerGroup        string `validate:"required"`
	Consumers            int    `validate:"gt=0"`
	AutoCommitIntervalMs int    `validate:"gt=0"`
	AutoOffsetReset      string `validate:"oneof=earliest latest"`
	SessionTimeoutMs     int    `validate:"gt=0"`
	FlushTimeout         int    `validate:"gt=0"`
}

type LogConfig struct {
	File       string
	MaxSizeMB  int `validate:"gt=0"`
	MaxBackups int `validate:"gte=0"`
}

type Config struct {
	HTTP HttpConfig
	Cart CartConfig
	RD   RedisConfig
	DB   DBConfig
	KF   KafkaConfig
	Log  LogConfig
	Env  string `validate:"oneof=local dev prod"`
}

func MustLoad(loader loader.ConfigLoader) *Config {
	const op = "configs.MustLoad"

	if os.Getenv("APP_ENV") == "" {
		envFlag := flag.String("env", "local", "Environment type")
		flag.Parse()
		if err := os.Setenv("APP_ENV", *envFlag); err != nil {
			log.Fatalf("%s: cannot set APP_ENV: %+v", op, err)
		}
	}

	cfg, err := Load(loader)
	if err != nil {
		log.Fatalf("%s: %+v", op, err)
	}
	return cfg
}

// Load builds and validates a Config from the loader's environment map.
func Load(loader loader.ConfigLoader) (*Config, error) {
	envs, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}

	env := envs["APP_ENV"]
	if env == "" {
		env = "local"
	}

	cfg := &Config{
		HTTP: HttpConfig{
			Port:         getEnvAsString(envs["HTTP_PORT"], "8080"),
			MetricsPort:  getEnvAsString(envs["METRICS_PORT"], "8082"),
			ReadTimeout:  getEnvAsDuration(envs["HTTP_READ_TIMEOUT"], 10*time.Second),
			WriteTimeout: getEnvAsDuration(envs["HTTP_WRITE_TIMEOUT"], 10*time.Second),
			IdleTimeout:  getEnvAsDuration(envs["HTTP_IDLE_TIMEOUT"], 60*time.Second),
		},
		Cart: CartConfig{
			Storage:        getEnvAsString(envs["CART_STORAGE"], StorageSession),
			Key:            getEnvAsString(envs["CART_KEY"], "_cart"),
			SessionCookie:  getEnvAsString(envs["CART_SESSION_COOKIE"], "cart_session"),
			CookieHashKey:  envs["CART_COOKIE_HASH_KEY"],
			CookieBlockKey: envs["CART_COOKIE_BLOCK_KEY"],
			CookieMaxAge:   getEnvAsInt(envs["CART_COOKIE_MAX_AGE"], 30*24*3600),
		},
		RD: RedisConfig{
			Enabled:      getEnvAsBool(envs["REDIS_ENABLED"], false),
			Host:         envs["REDIS_HOST"],
			DB:           getEnvAsInt(envs["REDIS_DB"], 0),
			Password:     envs["REDIS_PASSWORD"],
			Prefix:       getEnvAsString(envs["REDIS_PREFIX"], "cart:"),
			MaxRetries:   getEnvAsInt(envs["REDIS_MAX_RETRIES"], 3),
			DialTimeout:  getEnvAsDuration(envs["REDIS_DIAL_TIMEOUT"], 5*time.Second),
			ReadTimeout:  getEnvAsDuration(envs["REDIS_READ_TIMEOUT"], 5*time.Second),
			WriteTimeout: getEnvAsDuration(envs["REDIS_WRITE_TIMEOUT"], 5*time.Second),
			TTL:          getEnvAsDuration(envs["REDIS_TTL"], 30*24*time.Hour),
		},
		DB: DBConfig{
			Enabled:        getEnvAsBool(envs["POSTGRES_ENABLED"], false),
			User:           envs["POSTGRES_USER"],
			Password:       envs["POSTGRES_PASSWORD"],
			Name:           envs["POSTGRES_DB"],
			Host:           envs["POSTGRES_HOST"],
			Port:           getEnvAsString(envs["POSTGRES_PORT"], "5432"),
			ConnectTimeout: getEnvAsDuration(envs["POSTGRES_CONNECT_TIMEOUT"], 5*time.Second),
			Retries:        getEnvAsInt(envs["POSTGRES_RETRIES"], 1),
		},
		KF: KafkaConfig{
			Enabled:              getEnvAsBool(envs["KAFKA_ENABLED"], false),
			BootstrapServers:     envs["KAFKA_BOOTSTRAP_SERVERS"],
			Topic:                getEnvAsString(envs["KAFKA_TOPIC"], "cart-events"),
			ConsumerGroup:        getEnvAsString(envs["KAFKA_CONSUMER_GROUP"], "cart-events-log"),
			Consumers:            getEnvAsInt(envs["KAFKA_CONSUMERS"], 3),
			AutoCommitIntervalMs: getEnvAsInt(envs["KAFKA_AUTO_COMMIT_INTERVAL_MS"], 1000),
			AutoOffsetReset:      getEnvAsString(envs["KAFKA_AUTO_OFFSET_RESET"], "earliest"),
			SessionTimeoutMs:     getEnvAsInt(envs["KAFKA_SESSION_TIMEOUT_MS"], 6000),
			FlushTimeout:         getEnvAsInt(envs["KAFKA_FLUSH_TIMEOUT"], 5000),
		},
		Log: LogConfig{
			File:       envs["LOG_FILE"],
			MaxSizeMB:  getEnvAsInt(envs["LOG_MAX_SIZE_MB"], 100),
			MaxBackups: getEnvAsInt(envs["LOG_MAX_BACKUPS"], 3),
		},
		Env: env,
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("error validation config: %w", err)
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	return validation.Struct(cfg)
}

func getEnvAsString(strValue string, defaultValue string) string {
	if strValue == "" {
		return defaultValue
	}
	return strValue
}

func getEnvAsDuration(strValue string, defaultValue time.Duration) time.Duration {
	const op = "configs.getEnvAsDuration"
	if strValue == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("%s:forbidden value for %s, using default: %v", op,
			strValue, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsInt(strValue string, defaultValue int) int {
	const op = "configs.getEnvAsInt"
	if strValue == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("%s:forbidden value for %s, using default: %v", op, strValue,
			defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(strValue string, defaultValue bool) bool {
	const op = "configs.getEnvAsBool"
	if strValue == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(strValue)
	if err != nil {
		log.Printf("%s:forbidden value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}
