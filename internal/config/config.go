package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	configFileName = "paper"
	envPrefix      = "PAPER"
	defaultDir     = "./.tmp"
)

// Config holds everything the CLI, the services and the preview server need.
type Config struct {
	APIURL      string
	HTTPTimeout time.Duration
	Retry       int

	Cache CacheConfig
	DB    DBConfig

	ServerPort string
	Refresh    string

	LogLevel  string
	LogFormat string

	// Dir is where the session file and the default sqlite database live.
	Dir string
}

type CacheConfig struct {
	Backend     string // memory or redis
	RedisAddr   string
	Size        int
	Compression string // nop, gzip, brotli, lz4
}

type DBConfig struct {
	DSN string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("http_timeout", "10s")
	v.SetDefault("retry", 1)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.size", 512)
	v.SetDefault("cache.compression", "gzip")
	v.SetDefault("db.dsn", "")
	v.SetDefault("server.port", "4001")
	v.SetDefault("jobs.refresh", "@every 5m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("dir", defaultDir)
}

// LoadConfig reads paper.yml (if present) and PAPER_* environment variables.
func LoadConfig() *Config {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configFileName)
	v.SetConfigType("yml")
	v.AddConfigPath(defaultDir)
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "paper"))
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logrus.Warnf("error reading config file: %v", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		APIURL:      strings.TrimRight(v.GetString("api_url"), "/"),
		HTTPTimeout: v.GetDuration("http_timeout"),
		Retry:       v.GetInt("retry"),
		Cache: CacheConfig{
			Backend:     v.GetString("cache.backend"),
			RedisAddr:   v.GetString("cache.redis_addr"),
			Size:        v.GetInt("cache.size"),
			Compression: v.GetString("cache.compression"),
		},
		DB: DBConfig{
			DSN: v.GetString("db.dsn"),
		},
		ServerPort: v.GetString("server.port"),
		Refresh:    v.GetString("jobs.refresh"),
		LogLevel:   v.GetString("log.level"),
		LogFormat:  v.GetString("log.format"),
		Dir:        v.GetString("dir"),
	}

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	if cfg.Retry < 0 {
		cfg.Retry = 0
	}

	return cfg
}

// SetupLogging applies the configured level and format to the global logger.
func SetupLogging(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

// GetDb opens the draft database. A postgres:// dsn selects postgres, anything
// else is treated as a sqlite file path.
func GetDb(cfg *Config) *gorm.DB {
	dsn := cfg.DB.DSN
	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		dialector = postgres.Open(dsn)
	default:
		if dsn == "" {
			if err := os.MkdirAll(cfg.Dir, os.ModePerm); err != nil {
				logrus.Fatalf("error creating %s: %v", cfg.Dir, err)
			}
			dsn = filepath.Join(cfg.Dir, "paper.db")
		}
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logrus.Fatalf("error opening database: %v", err)
	}

	return db
}
