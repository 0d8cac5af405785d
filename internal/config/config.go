package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Search    SearchConfig
	Quota     QuotaConfig
	Providers ProvidersConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	ScheduleCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type SearchConfig struct {
	DefaultRadiusMeters float64
	MaxRadiusMeters     float64
}

type QuotaConfig struct {
	DefaultLimit int64
}

// ProviderConfig - um provedor upstream de agenda de coleta.
// A posição no slice Providers define a ordem de fallback.
type ProviderConfig struct {
	Name    string
	BaseURL string
}

type ProvidersConfig struct {
	List            []ProviderConfig
	RequestTimeout  time.Duration
	OverallDeadline time.Duration
}

type WorkerConfig struct {
	Enabled         bool
	RefreshInterval time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			ScheduleCacheTTL: time.Duration(viper.GetInt("SCHEDULE_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Search: SearchConfig{
			DefaultRadiusMeters: viper.GetFloat64("SEARCH_DEFAULT_RADIUS"),
			MaxRadiusMeters:     viper.GetFloat64("SEARCH_MAX_RADIUS"),
		},
		Quota: QuotaConfig{
			DefaultLimit: viper.GetInt64("QUOTA_DEFAULT_LIMIT"),
		},
		Providers: ProvidersConfig{
			List:            parseProviders(viper.GetString("SCHEDULE_PROVIDERS")),
			RequestTimeout:  time.Duration(viper.GetInt("PROVIDER_REQUEST_TIMEOUT")) * time.Millisecond,
			OverallDeadline: time.Duration(viper.GetInt("PROVIDER_OVERALL_DEADLINE")) * time.Millisecond,
		},
		Worker: WorkerConfig{
			Enabled:         viper.GetBool("WORKER_ENABLED"),
			RefreshInterval: time.Duration(viper.GetInt("WORKER_REFRESH_INTERVAL")) * time.Second,
		},
	}

	// Valores padrão quando não informados
	if cfg.Cache.ScheduleCacheTTL == 0 {
		cfg.Cache.ScheduleCacheTTL = 6 * time.Hour
	}
	if cfg.Search.DefaultRadiusMeters == 0 {
		cfg.Search.DefaultRadiusMeters = 5000
	}
	if cfg.Search.MaxRadiusMeters == 0 {
		cfg.Search.MaxRadiusMeters = 100000
	}
	if cfg.Quota.DefaultLimit == 0 {
		cfg.Quota.DefaultLimit = 10
	}
	if cfg.Providers.RequestTimeout == 0 {
		cfg.Providers.RequestTimeout = 3000 * time.Millisecond
	}
	if cfg.Providers.OverallDeadline == 0 {
		cfg.Providers.OverallDeadline = 10000 * time.Millisecond
	}
	if cfg.Worker.RefreshInterval == 0 {
		cfg.Worker.RefreshInterval = 15 * time.Minute
	}

	return cfg, nil
}

// parseProviders interpreta "loga=https://...,ecourbis=https://..."
// preservando a ordem, que é a ordem de fallback do orquestrador
func parseProviders(s string) []ProviderConfig {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]ProviderConfig, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		name, url, found := strings.Cut(p, "=")
		if !found {
			continue
		}
		result = append(result, ProviderConfig{
			Name:    strings.TrimSpace(name),
			BaseURL: strings.TrimSpace(url),
		})
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
