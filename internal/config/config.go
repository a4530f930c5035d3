package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Order    OrderConfig
	Cache    CacheConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	// Addr empty disables the cache; every cache operation then
	// degrades to a no-op.
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	Level string
}

type OrderConfig struct {
	// StrictTransitions rejects status overwrites that are not on the
	// forward path. Off by default: the permissive table lets owners
	// correct mistakes manually.
	StrictTransitions bool
	TxTimeout         time.Duration
}

type CacheConfig struct {
	PublicMenuTTL time.Duration
	PlaceStatsTTL time.Duration
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "qrmenu")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "qrmenu")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ORDER_STRICT_TRANSITIONS", false)
	viper.SetDefault("ORDER_TX_TIMEOUT", "5s")
	viper.SetDefault("CACHE_PUBLIC_MENU_TTL", "1h")
	viper.SetDefault("CACHE_PLACE_STATS_TTL", "5m")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	txTimeout, err := time.ParseDuration(viper.GetString("ORDER_TX_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	menuTTL, err := time.ParseDuration(viper.GetString("CACHE_PUBLIC_MENU_TTL"))
	if err != nil {
		return nil, err
	}

	statsTTL, err := time.ParseDuration(viper.GetString("CACHE_PLACE_STATS_TTL"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Order: OrderConfig{
			StrictTransitions: viper.GetBool("ORDER_STRICT_TRANSITIONS"),
			TxTimeout:         txTimeout,
		},
		Cache: CacheConfig{
			PublicMenuTTL: menuTTL,
			PlaceStatsTTL: statsTTL,
		},
	}

	return cfg, nil
}
