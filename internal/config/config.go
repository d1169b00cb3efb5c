package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath переменная окружения, переопределяющая путь к конфигу
const EnvConfigPath = "CONFIG_PATH"

var (
	// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Booking       BookingConfig       `toml:"booking"`
	Redis         RedisConfig         `toml:"redis"`
	Messaging     MessagingConfig     `toml:"messaging"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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
	RunMigrations   bool   `toml:"run_migrations"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig политика бронирования
type BookingConfig struct {
	// Timezone салона, в ней вычисляется "сегодня"
	Timezone string `toml:"timezone"`
	// MinNoticeMinutes минимальный запас до начала слота на сегодня
	MinNoticeMinutes int `toml:"min_notice_minutes"`
	// AdvanceBookingDays насколько дней вперёд можно записаться (0 - без ограничения)
	AdvanceBookingDays int `toml:"advance_booking_days"`
	// DefaultDurationMinutes длительность визита, если клиент её не указал
	DefaultDurationMinutes int `toml:"default_duration_minutes"`
}

// Location возвращает часовой пояс салона
func (c BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RedisConfig настройки Redis (блокировка слотов и очередь уведомлений)
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	LockTTLSec int    `toml:"lock_ttl_sec"`
}

// LockTTL время жизни блокировки слота
func (c RedisConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSec) * time.Second
}

// MessagingConfig настройки шлюза SMS/WhatsApp
type MessagingConfig struct {
	URL     string `toml:"url"`
	Token   string `toml:"token"`
	Timeout int    `toml:"timeout"`
	// Channel канал по умолчанию: sms или whatsapp
	Channel string `toml:"channel"`
}

// NotificationsConfig настройки уведомлений клиентов
type NotificationsConfig struct {
	Enabled           bool   `toml:"enabled"`
	Concurrency       int    `toml:"concurrency"`
	ReminderBeforeMin int    `toml:"reminder_before_min"`
	SalonName         string `toml:"salon_name"`
}

// ReminderBefore за сколько до визита отправляется напоминание
func (c NotificationsConfig) ReminderBefore() time.Duration {
	return time.Duration(c.ReminderBeforeMin) * time.Minute
}

// Load читает конфигурацию из TOML файла.
// Если задана переменная CONFIG_PATH, используется она.
func Load(path string) (*Config, error) {
	if env := os.Getenv(EnvConfigPath); env != "" {
		path = env
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon-booking"
	}

	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "UTC"
	}
	if c.Booking.DefaultDurationMinutes == 0 {
		c.Booking.DefaultDurationMinutes = 60
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.LockTTLSec == 0 {
		c.Redis.LockTTLSec = 30
	}

	if c.Messaging.Timeout == 0 {
		c.Messaging.Timeout = 5
	}
	if c.Messaging.Channel == "" {
		c.Messaging.Channel = "sms"
	}

	if c.Notifications.Concurrency == 0 {
		c.Notifications.Concurrency = 5
	}
	if c.Notifications.ReminderBeforeMin == 0 {
		c.Notifications.ReminderBeforeMin = 24 * 60
	}
}

// Validate проверяет конфигурацию после применения значений по умолчанию
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	switch c.Logs.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logs.level %q is unknown", ErrInvalidConfig, c.Logs.Level)
	}
	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		return fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	if c.Booking.MinNoticeMinutes < 0 {
		return fmt.Errorf("%w: booking.min_notice_minutes must not be negative", ErrInvalidConfig)
	}
	if c.Booking.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: booking.advance_booking_days must not be negative", ErrInvalidConfig)
	}
	if c.Booking.DefaultDurationMinutes < 0 {
		return fmt.Errorf("%w: booking.default_duration_minutes must not be negative", ErrInvalidConfig)
	}
	switch c.Messaging.Channel {
	case "sms", "whatsapp":
	default:
		return fmt.Errorf("%w: messaging.channel %q is unknown", ErrInvalidConfig, c.Messaging.Channel)
	}
	if c.Notifications.Enabled {
		if !c.Redis.Enabled {
			return fmt.Errorf("%w: notifications require redis.enabled", ErrInvalidConfig)
		}
		if c.Messaging.URL == "" {
			return fmt.Errorf("%w: notifications require messaging.url", ErrInvalidConfig)
		}
	}
	return nil
}
