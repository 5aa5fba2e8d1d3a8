package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	POS       POSConfig       `mapstructure:"pos"`
	Payment   PaymentConfig   `mapstructure:"payment"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Barcode   BarcodeConfig   `mapstructure:"barcode"`
	Forecast  ForecastConfig  `mapstructure:"forecast"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// StoreConfig selects the key-value backend: memory, redis or postgres.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type POSConfig struct {
	TaxRate float64 `mapstructure:"tax_rate"`
}

type PaymentConfig struct {
	SuccessRate float64       `mapstructure:"success_rate"`
	VerifyDelay time.Duration `mapstructure:"verify_delay"`
	ScanDelay   time.Duration `mapstructure:"scan_delay"`
	RefundDelay time.Duration `mapstructure:"refund_delay"`
}

type NotifyConfig struct {
	SendDelay    time.Duration `mapstructure:"send_delay"`
	DeliverDelay time.Duration `mapstructure:"deliver_delay"`
	ReadDelay    time.Duration `mapstructure:"read_delay"`
	SummaryEvery time.Duration `mapstructure:"summary_every"`
}

type BarcodeConfig struct {
	ScanDelay time.Duration `mapstructure:"scan_delay"`
}

type ForecastConfig struct {
	WindowDays      int     `mapstructure:"window_days"`
	SafetyBuffer    float64 `mapstructure:"safety_buffer"`
	HighDemandRate  float64 `mapstructure:"high_demand_rate"`
	ConfidenceBase  int     `mapstructure:"confidence_base"`
	ConfidenceStep  int     `mapstructure:"confidence_step"`
	ConfidenceFloor int     `mapstructure:"confidence_floor"`
	ConfidenceCeil  int     `mapstructure:"confidence_ceil"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("store.driver", "memory")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("pos.tax_rate", 0.13)

	v.SetDefault("payment.success_rate", 0.95)
	v.SetDefault("payment.verify_delay", 2*time.Second)
	v.SetDefault("payment.scan_delay", 3*time.Second)
	v.SetDefault("payment.refund_delay", 1500*time.Millisecond)

	v.SetDefault("notify.send_delay", time.Second)
	v.SetDefault("notify.deliver_delay", 2*time.Second)
	v.SetDefault("notify.read_delay", 5*time.Second)
	v.SetDefault("notify.summary_every", 24*time.Hour)

	v.SetDefault("barcode.scan_delay", time.Second)

	v.SetDefault("forecast.window_days", 7)
	v.SetDefault("forecast.safety_buffer", 1.2)
	v.SetDefault("forecast.high_demand_rate", 3.0)
	v.SetDefault("forecast.confidence_base", 75)
	v.SetDefault("forecast.confidence_step", 2)
	v.SetDefault("forecast.confidence_floor", 60)
	v.SetDefault("forecast.confidence_ceil", 95)

	v.SetDefault("ratelimit.rps", 5.0)
	v.SetDefault("ratelimit.burst", 10)
}

// Load reads defaults, then an optional config file, then KIRANA_* environment
// variables (KIRANA_PAYMENT_SUCCESS_RATE overrides payment.success_rate).
// An empty path looks for ./config.yaml.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("KIRANA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case "memory", "redis":
	case "postgres":
		if c.Database.URL == "" {
			return errors.New("database.url is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.POS.TaxRate < 0 || c.POS.TaxRate > 1 {
		return fmt.Errorf("pos.tax_rate must be within [0, 1], got %v", c.POS.TaxRate)
	}
	if c.Payment.SuccessRate < 0 || c.Payment.SuccessRate > 1 {
		return fmt.Errorf("payment.success_rate must be within [0, 1], got %v", c.Payment.SuccessRate)
	}
	if c.Forecast.WindowDays < 1 {
		return fmt.Errorf("forecast.window_days must be at least 1, got %d", c.Forecast.WindowDays)
	}
	if c.Notify.SummaryEvery <= 0 {
		return fmt.Errorf("notify.summary_every must be positive, got %s", c.Notify.SummaryEvery)
	}
	if c.Forecast.ConfidenceFloor > c.Forecast.ConfidenceCeil {
		return errors.New("forecast.confidence_floor cannot exceed forecast.confidence_ceil")
	}
	return nil
}
