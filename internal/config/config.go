package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/LomaCotta/haulers-app-sub001/pkg/money"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла.
// Имя переменной: HAULERS_<СЕКЦИЯ>_<ПОЛЕ>, например HAULERS_DB_HOST или HAULERS_AUTH_JWTSECRET
const EnvPrefix = "HAULERS"

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server" envconfig:"SERVER"`
	Database     DatabaseConfig     `toml:"database" envconfig:"DB"`
	Logs         LogsConfig         `toml:"logs" envconfig:"LOG"`
	Metrics      MetricsConfig      `toml:"metrics" envconfig:"METRICS"`
	Auth         AuthConfig         `toml:"auth" envconfig:"AUTH"`
	RPC          RPCConfig          `toml:"rpc" envconfig:"RPC"`
	Redis        RedisConfig        `toml:"redis" envconfig:"REDIS"`
	Pricing      PricingConfig      `toml:"pricing" envconfig:"PRICING"`
	Availability AvailabilityConfig `toml:"availability" envconfig:"AVAILABILITY"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
	MigrationsDir   string `toml:"migrations_dir"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	Issuer    string `toml:"issuer"`
}

// RPCConfig доступ к хранимым процедурам через REST RPC платформы
type RPCConfig struct {
	URL        string `toml:"url"`
	ServiceKey string `toml:"service_key"`
	Schema     string `toml:"schema"`
}

type RedisConfig struct {
	Enabled        bool   `toml:"enabled"`
	Addr           string `toml:"addr"`
	Password       string `toml:"password"`
	DB             int    `toml:"db"`
	LockTTLSeconds int    `toml:"lock_ttl_seconds"`
}

// LockTTL время жизни распределенной блокировки
func (c RedisConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSeconds) * time.Second
}

// PricingConfig значения по умолчанию в долларах, например "99" или "25.00"
type PricingConfig struct {
	PackingRoomRate  string `toml:"packing_room_rate"`
	StairsFlightRate string `toml:"stairs_flight_rate"`
}

// PackingRoomRateCents ставка упаковки за комнату в центах
func (c PricingConfig) PackingRoomRateCents() (int64, error) {
	return money.ParseDollars(c.PackingRoomRate)
}

// StairsFlightRateCents ставка за пролет лестницы в центах
func (c PricingConfig) StairsFlightRateCents() (int64, error) {
	return money.ParseDollars(c.StairsFlightRate)
}

type AvailabilityConfig struct {
	ApplyExtraCapacity    bool `toml:"apply_extra_capacity"`
	DefaultMinNoticeHours int  `toml:"default_min_notice_hours"`
	MaxRangeDays          int  `toml:"max_range_days"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "haulers",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			MigrationsDir:   "migrations",
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "haulers",
		},
		RPC: RPCConfig{
			Schema: "public",
		},
		Redis: RedisConfig{
			Addr:           "localhost:6379",
			LockTTLSeconds: 60,
		},
		Pricing: PricingConfig{
			PackingRoomRate:  "99.00",
			StairsFlightRate: "25.00",
		},
		Availability: AvailabilityConfig{
			DefaultMinNoticeHours: 24,
			MaxRangeDays:          92,
		},
	}
}

// Load читает конфигурацию из TOML файла и применяет переопределения из окружения.
// Отсутствующий файл не является ошибкой: используются значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("config: decode %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные значения
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}
	if _, err := c.Pricing.PackingRoomRateCents(); err != nil {
		return fmt.Errorf("%w: pricing.packing_room_rate: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Pricing.StairsFlightRateCents(); err != nil {
		return fmt.Errorf("%w: pricing.stairs_flight_rate: %v", ErrInvalidConfig, err)
	}
	if c.Availability.MaxRangeDays <= 0 {
		return fmt.Errorf("%w: availability.max_range_days must be positive", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.LockTTLSeconds <= 0 {
		return fmt.Errorf("%w: redis.lock_ttl_seconds must be positive", ErrInvalidConfig)
	}
	return nil
}
