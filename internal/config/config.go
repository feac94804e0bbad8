package config

import (
	"fmt"
	"os"
	"time"

	"exam_integrity_backend/internal/integrity"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Tracing   TracingConfig `mapstructure:"tracing"`
	Redis     RedisConfig
	Log       LogConfig       `mapstructure:"log"`
	Integrity IntegrityConfig `mapstructure:"integrity"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioSecure   bool   `mapstructure:"minio_secure"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int `mapstructure:"pool_size"`
	MinIdleConns int `mapstructure:"min_idle_conns"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// IntegrityConfig 完整性分析参数
type IntegrityConfig struct {
	WindowSeconds   int  `mapstructure:"window_seconds"`
	GraceMs         int  `mapstructure:"grace_ms"`
	CacheTTLMinutes int  `mapstructure:"cache_ttl_minutes"`
	MaxParallel     int  `mapstructure:"max_parallel"`
	ArchiveEnabled  bool `mapstructure:"archive_enabled"`

	// 预览接口无需登录，限制单次请求规模
	PreviewMaxEvents  int `mapstructure:"preview_max_events"`
	PreviewMaxAnswers int `mapstructure:"preview_max_answers"`
	PreviewMaxBodyKB  int `mapstructure:"preview_max_body_kb"`
}

func (c IntegrityConfig) FocusLossOptions() integrity.FocusLossOptions {
	return integrity.FocusLossOptions{
		WindowSeconds: c.WindowSeconds,
		GraceMs:       c.GraceMs,
	}
}

func (c IntegrityConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

func (c IntegrityConfig) PreviewBodyLimit() int64 {
	return int64(c.PreviewMaxBodyKB) << 10
}

func setDefaults(v *viper.Viper) {
	defaults := integrity.DefaultFocusLossOptions()
	v.SetDefault("integrity.window_seconds", defaults.WindowSeconds)
	v.SetDefault("integrity.grace_ms", defaults.GraceMs)
	v.SetDefault("integrity.cache_ttl_minutes", 30)
	v.SetDefault("integrity.max_parallel", 8)
	v.SetDefault("integrity.archive_enabled", false)
	v.SetDefault("integrity.preview_max_events", 5000)
	v.SetDefault("integrity.preview_max_answers", 500)
	v.SetDefault("integrity.preview_max_body_kb", 1024)
	v.SetDefault("redis.pool_size", 50)
	v.SetDefault("redis.min_idle_conns", 5)

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "reports")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("EXAM_INTEGRITY")
	v.AutomaticEnv()
	setDefaults(v)

	// Database
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")

	// Storage
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.oss_endpoint", "OSS_ENDPOINT")
	v.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	v.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")
	v.BindEnv("storage.oss_bucket", "OSS_BUCKET")
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// Integrity
	v.BindEnv("integrity.window_seconds", "INTEGRITY_WINDOW_SECONDS")
	v.BindEnv("integrity.grace_ms", "INTEGRITY_GRACE_MS")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	// 生产环境校验 JWT Secret 强度
	if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}
	if c.Integrity.WindowSeconds < 0 || c.Integrity.GraceMs < 0 {
		return fmt.Errorf("integrity window (%ds) and grace (%dms) must not be negative", c.Integrity.WindowSeconds, c.Integrity.GraceMs)
	}
	if c.Integrity.MaxParallel < 1 {
		return fmt.Errorf("integrity.max_parallel must be at least 1, got %d", c.Integrity.MaxParallel)
	}
	if c.Integrity.PreviewMaxEvents < 1 || c.Integrity.PreviewMaxAnswers < 1 || c.Integrity.PreviewMaxBodyKB < 1 {
		return fmt.Errorf("integrity preview limits must be at least 1 (events=%d answers=%d body_kb=%d)",
			c.Integrity.PreviewMaxEvents, c.Integrity.PreviewMaxAnswers, c.Integrity.PreviewMaxBodyKB)
	}
	return nil
}
