package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8000"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowRequest     time.Duration `yaml:"slow_request" default:"2s"`
		CORS            bool          `yaml:"cors" default:"true"`
		RateLimit       struct {
			RPS   float64 `yaml:"rps" default:"2"`
			Burst int     `yaml:"burst" default:"5"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Storage struct {
		DataDir       string `yaml:"data_dir" default:"./Data"`
		DefaultRegion string `yaml:"default_region" default:"KR"`
	} `yaml:"storage"`
	Market struct {
		ChartURL      string        `yaml:"chart_url" default:"https://query1.finance.yahoo.com/v8/finance/chart/"`
		ListingURL    string        `yaml:"listing_url"`
		NumericSuffix string        `yaml:"numeric_suffix" default:".KS"`
		Timeout       time.Duration `yaml:"timeout" default:"15s"`
		Retries       int           `yaml:"retries" default:"3"`
		CacheTTL      time.Duration `yaml:"cache_ttl" default:"10m"`
	} `yaml:"market"`
	Cache struct {
		Backend       string        `yaml:"backend" default:"memory"`
		MemoryMaxSize int           `yaml:"memory_max_size" default:"1000"`
		MemoryCleanup time.Duration `yaml:"memory_cleanup" default:"1m"`
		LockTTL       time.Duration `yaml:"lock_ttl" default:"30s"`
		Redis         struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"findash"`
			PoolSize int    `yaml:"pool_size" default:"10"`
			MinIdle  int    `yaml:"min_idle" default:"2"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	ClickHouse struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host" default:"localhost"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"findash"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout     time.Duration `yaml:"write_timeout" default:"10s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"30s"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic" default:"findash.events"`
		RequiredAcks int           `yaml:"required_acks" default:"-1"`
		Compression  string        `yaml:"compression" default:"gzip"`
		MaxAttempts  int           `yaml:"max_attempts" default:"3"`
		BatchTimeout time.Duration `yaml:"batch_timeout" default:"500ms"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
		Async        bool          `yaml:"async"`
	} `yaml:"kafka"`
	Telegram struct {
		Enabled  bool   `yaml:"enabled"`
		BotToken string `yaml:"bot_token"`
		ChatID   int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	Scheduler struct {
		Enabled      bool     `yaml:"enabled"`
		DigestCron   string   `yaml:"digest_cron" default:"0 30 8 * * 1-5"`
		DigestTerm   int      `yaml:"digest_term" default:"29"`
		WatchSymbols []string `yaml:"watch_symbols"`
	} `yaml:"scheduler"`
}

// Default returns a config populated only from struct defaults.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	c, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func read(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads .env (if present), then YAML, then applies environment overrides.
// A missing YAML file falls back to defaults so the service can run from env alone.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c, err := read(path)
	if errors.Is(err, fs.ErrNotExist) {
		c, err = Default()
	}
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("APP_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("LISTING_URL"); v != "" {
		c.Market.ListingURL = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.ChatID = id
		}
	}
	if v := os.Getenv("WATCH_SYMBOLS"); v != "" {
		c.Scheduler.WatchSymbols = strings.Split(v, ",")
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir is required")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Telegram.Enabled && (c.Telegram.BotToken == "" || c.Telegram.ChatID == 0) {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id are required when telegram is enabled")
	}
	if c.Scheduler.Enabled && c.Scheduler.DigestCron == "" {
		return fmt.Errorf("scheduler.digest_cron is required when the scheduler is enabled")
	}
	return nil
}
