package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all engine configuration
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Log        LogConfig
	Tax        TaxConfig
	Settlement SettlementConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string `validate:"required"`
	Env  string `validate:"oneof=development staging production"`
}

// DatabaseConfig holds database connection settings for the read-only
// price list and payment method repositories
type DatabaseConfig struct {
	Host            string `validate:"required"`
	Port            int    `validate:"gt=0,lte=65535"`
	User            string `validate:"required"`
	Password        string
	DBName          string `validate:"required"`
	SSLMode         string `validate:"oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `validate:"gte=1"`
	MaxIdleConns    int    `validate:"gte=0"`
	ConnMaxLifetime int    `validate:"gte=0"` // in minutes
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error fatal"`
	Format string `validate:"oneof=json console"`
	Output string `validate:"required"`
}

// TaxConfig holds the IGTF-style transaction tax settings. Rate is a
// fraction, e.g. "0.03" for 3%.
type TaxConfig struct {
	Rate  string `validate:"required"`
	Label string `validate:"required"`
}

// SettlementConfig holds settlement balance settings
type SettlementConfig struct {
	BalanceEpsilon string `validate:"required"`
}

// TaxRate returns the configured tax rate as a decimal
func (c *Config) TaxRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.Tax.Rate)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid tax rate %q: %w", c.Tax.Rate, err)
	}
	if rate.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("tax rate cannot be negative: %s", c.Tax.Rate)
	}
	return rate, nil
}

// BalanceEpsilon returns the configured settlement balance tolerance as a decimal
func (c *Config) BalanceEpsilon() (decimal.Decimal, error) {
	epsilon, err := decimal.NewFromString(c.Settlement.BalanceEpsilon)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid balance epsilon %q: %w", c.Settlement.BalanceEpsilon, err)
	}
	if !epsilon.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("balance epsilon must be positive: %s", c.Settlement.BalanceEpsilon)
	}
	return epsilon, nil
}

// Load reads configuration from config.toml (if present) with environment
// variable overrides prefixed PRICING_, e.g. PRICING_TAX_RATE.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("PRICING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Tax: TaxConfig{
			Rate:  v.GetString("tax.rate"),
			Label: v.GetString("tax.label"),
		},
		Settlement: SettlementConfig{
			BalanceEpsilon: v.GetString("settlement.balance_epsilon"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct constraints plus
// the decimal fields viper cannot type-check.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := c.TaxRate(); err != nil {
		return err
	}
	if _, err := c.BalanceEpsilon(); err != nil {
		return err
	}
	return nil
}

// setDefaults establishes safe defaults so the engine runs without a
// config file
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "pricing-engine")
	v.SetDefault("app.env", "development")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "commerce")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("tax.rate", "0.03")
	v.SetDefault("tax.label", "IGTF 3%")

	v.SetDefault("settlement.balance_epsilon", "0.01")
}
