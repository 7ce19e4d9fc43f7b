package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 服务配置
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Report   ReportConfig
}

type ServerConfig struct {
	Port string
	Mode string // debug / release
}

type DatabaseConfig struct {
	Driver       string // postgres / sqlite
	DSN          string
	MaxIdleConns int
	MaxOpenConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ReportConfig struct {
	PageSize     int           // 分录分页大小
	CacheBackend string        // memory / redis / none
	CacheTTL     time.Duration // 0 表示不缓存
}

// Load 读取 yaml 配置，环境变量 FINSCALE_* 覆盖同名配置项
// 例如 FINSCALE_DATABASE_DSN 覆盖 database.dsn
// 当前目录有 .env 时先加载
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("report.page_size", 5000)
	v.SetDefault("report.cache_backend", "memory")
	v.SetDefault("report.cache_ttl", "1m")

	v.SetEnvPrefix("FINSCALE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("server.port"),
			Mode: v.GetString("server.mode"),
		},
		Database: DatabaseConfig{
			Driver:       v.GetString("database.driver"),
			DSN:          v.GetString("database.dsn"),
			MaxIdleConns: v.GetInt("database.max_idle_conns"),
			MaxOpenConns: v.GetInt("database.max_open_conns"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Report: ReportConfig{
			PageSize:     v.GetInt("report.page_size"),
			CacheBackend: v.GetString("report.cache_backend"),
			CacheTTL:     v.GetDuration("report.cache_ttl"),
		},
	}
	if cfg.Report.PageSize <= 0 {
		return nil, fmt.Errorf("report.page_size must be positive, got %d", cfg.Report.PageSize)
	}
	return cfg, nil
}
