package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
	StoreMemory   = "memory"
)

type Config struct {
	ServerPort string `yaml:"server_port"`
	Env        string `yaml:"env"`
	LogLevel   string `yaml:"log_level"`

	StoreDriver string `yaml:"store_driver"`
	DBHost      string `yaml:"db_host"`
	DBPort      string `yaml:"db_port"`
	DBUser      string `yaml:"db_user"`
	DBPass      string `yaml:"db_password"`
	DBName      string `yaml:"db_name"`
	MongoURI    string `yaml:"mongo_uri"`
	MongoDB     string `yaml:"mongo_db"`

	RedisURL string        `yaml:"redis_url"`
	RedisTTL time.Duration `yaml:"redis_ttl"`

	BcryptCost        int    `yaml:"bcrypt_cost"`
	ThreadListLimit   int    `yaml:"thread_list_limit"`
	ReplyPreviewLimit int    `yaml:"reply_preview_limit"`
	FrontendURL       string `yaml:"frontend_url"`

	SeedBoards []string `yaml:"seed_boards"`
}

func defaults() Config {
	return Config{
		ServerPort:        "8080",
		Env:               "dev",
		LogLevel:          "info",
		StoreDriver:       StorePostgres,
		DBHost:            "postgres",
		DBPort:            "5432",
		DBUser:            "postgres",
		DBPass:            "password",
		DBName:            "messageboard",
		MongoURI:          "mongodb://mongo:27017",
		MongoDB:           "messageboard",
		RedisURL:          "",
		RedisTTL:          5 * time.Minute,
		BcryptCost:        10,
		ThreadListLimit:   10,
		ReplyPreviewLimit: 3,
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
func LoadConfig() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.StoreDriver = getEnv("STORE_DRIVER", cfg.StoreDriver)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPass = getEnv("DB_PASSWORD", cfg.DBPass)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.MongoURI = getEnv("MONGO_URI", cfg.MongoURI)
	cfg.MongoDB = getEnv("MONGO_DB", cfg.MongoDB)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.RedisTTL = getEnvAsDuration("REDIS_TTL", cfg.RedisTTL)
	cfg.BcryptCost = getEnvAsInt("BCRYPT_COST", cfg.BcryptCost)
	cfg.ThreadListLimit = getEnvAsInt("THREAD_LIST_LIMIT", cfg.ThreadListLimit)
	cfg.ReplyPreviewLimit = getEnvAsInt("REPLY_PREVIEW_LIMIT", cfg.ReplyPreviewLimit)
	cfg.FrontendURL = getEnv("FRONTEND_URL", cfg.FrontendURL)
	cfg.SeedBoards = getEnvAsList("SEED_BOARDS", cfg.SeedBoards)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StorePostgres, StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.ThreadListLimit < 1 {
		return fmt.Errorf("thread list limit must be positive, got %d", c.ThreadListLimit)
	}
	if c.ReplyPreviewLimit < 0 {
		return fmt.Errorf("reply preview limit must not be negative, got %d", c.ReplyPreviewLimit)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := time.ParseDuration(value); err == nil {
			return v
		}
	}
	return fallback
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}
