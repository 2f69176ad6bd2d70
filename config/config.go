package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name         string
		Port         string
		Mode         string
		ReadTimeout  time.Duration `mapstructure:"read_timeout"`
		WriteTimeout time.Duration `mapstructure:"write_timeout"`
	}
	Log struct {
		Level    string
		Encoding string
	}
	Likes struct {
		Backend         string
		File            string
		SerializeWrites bool   `mapstructure:"serialize_writes"`
		RedisKey        string `mapstructure:"redis_key"`
	}
	Database struct {
		Dsn          string
		MaxIdleConns int `mapstructure:"max_idle_conns"`
		MaxOpenConns int `mapstructure:"max_open_conns"`
	}
	Redis struct {
		Addr     string
		DB       int
		Password string
	}
	RabbitMQ struct {
		Url     string
		Queue   string
		Consume bool
	}
	Cors struct {
		AllowOrigins []string `mapstructure:"allow_origins"`
	}
	Site struct {
		BaseURL     string `mapstructure:"base_url"`
		Author      string
		Description string
		Language    string
	}
}

const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMySQL = "mysql"
)

var AppConfig *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "portfolio")
	v.SetDefault("app.port", "3000")
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.read_timeout", "10s")
	v.SetDefault("app.write_timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("likes.backend", BackendFile)
	v.SetDefault("likes.file", "data/likes.json")
	v.SetDefault("likes.serialize_writes", false)
	v.SetDefault("likes.redis_key", "likes:counts")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.queue", "like.queue")
	v.SetDefault("rabbitmq.consume", false)
	v.SetDefault("cors.allow_origins", []string{})
	v.SetDefault("site.base_url", "https://kanit.codes")
	v.SetDefault("site.author", "Kanit Mann")
	v.SetDefault("site.description", "Articles and insights by Kanit Mann on data science and technology.")
	v.SetDefault("site.language", "en-us")
}

// Load reads configuration from file (./config/config.yml when empty) and the
// PORTFOLIO_* environment. A missing default file is not an error.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// 托管平台通常只注入 PORT
	cfg.App.Port = getEnvOrDefault("PORT", cfg.App.Port)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InitConfig loads the configuration into AppConfig and builds the global logger.
func InitConfig(file string) error {
	cfg, err := Load(file)
	if err != nil {
		return err
	}
	AppConfig = cfg
	return InitLogger(cfg)
}

func validate(cfg *Config) error {
	switch cfg.App.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: app.mode must be debug, release or test, got %q", cfg.App.Mode)
	}
	switch cfg.Likes.Backend {
	case BackendFile, BackendRedis, BackendMySQL:
	default:
		return fmt.Errorf("config: unknown likes.backend %q", cfg.Likes.Backend)
	}
	if cfg.Likes.Backend == BackendRedis && cfg.Redis.Addr == "" {
		return errors.New("config: likes.backend is redis but redis.addr is empty")
	}
	if cfg.Likes.Backend == BackendMySQL && cfg.Database.Dsn == "" {
		return errors.New("config: likes.backend is mysql but database.dsn is empty")
	}
	return nil
}

// getEnvOrDefault 获取环境变量，如果不存在则返回默认值
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
