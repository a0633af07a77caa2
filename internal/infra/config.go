package infra

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/xela07ax/gcfin-panel/internal/domain"
)

// Config is the root configuration of the panel service.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Sheets  SheetsConfig  `mapstructure:"sheets"`
	Closing ClosingConfig `mapstructure:"closing"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Rules   RulesConfig   `mapstructure:"rules"`
}

// ServerConfig describes the HTTP server.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// SheetsConfig points at the spreadsheet snapshot the service reads.
type SheetsConfig struct {
	SnapshotPath string `mapstructure:"snapshot_path"`
}

// ClosingConfig describes the closing-window bot web app.
type ClosingConfig struct {
	WebAppURL  string        `mapstructure:"webapp_url"`
	APIKey     string        `mapstructure:"api_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RatePerSec float64       `mapstructure:"rate_per_sec"`
	RateBurst  int           `mapstructure:"rate_burst"`
}

// AuthConfig holds the identity provider's public key for RS256 validation.
// The panel never signs tokens; they are issued elsewhere.
type AuthConfig struct {
	PublicKeyPath string `mapstructure:"public_key_path"`
	PublicKey     []byte
}

// LoggerConfig tunes the zap logger.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// RulesConfig carries the business constants of the classifier so they stay
// visible configuration instead of inlined conditionals.
type RulesConfig struct {
	Companies        []string `mapstructure:"companies"`
	NoInvoiceCompany string   `mapstructure:"no_invoice_company"`
	HardErrorFlags   []string `mapstructure:"hard_error_flags"`
	DefaultComp      string   `mapstructure:"default_comp"`
}

// Ruleset converts the configured constants into the classifier's input.
func (r RulesConfig) Ruleset() domain.Ruleset {
	return domain.Ruleset{
		Companies:        r.Companies,
		NoInvoiceCompany: r.NoInvoiceCompany,
		HardErrorFlags:   r.HardErrorFlags,
	}
}

// LoadConfig merges the config file, ENV overrides and defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. File lookup
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	// 2. ENV overrides: SERVER_PORT=9000 overrides server.port
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 3. Defaults
	setDefaults(v)

	// 4. Read the file; ENV + defaults are enough when it is absent
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// 5. Map into the struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	// 6. Key material from ENV (Docker/K8s) or from the configured path
	cfg.Auth.PublicKey = loadKeyResource(cfg.Auth.PublicKeyPath, "AUTH_PUBLIC_KEY_DATA")

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("closing.timeout", 10*time.Second)
	v.SetDefault("closing.rate_per_sec", 5)
	v.SetDefault("closing.rate_burst", 5)
	v.SetDefault("rules.companies", []string{"T.Youth", "T.Brands", "T.Dreams", "T.Venues", "T.Group"})
	v.SetDefault("rules.no_invoice_company", "T.Youth")
	v.SetDefault("rules.hard_error_flags", []string{"SEM_RATEIO", "SEM_SALARIO_MES"})
	v.SetDefault("rules.default_comp", "FEV-26")
}

func loadKeyResource(path string, envDataKey string) []byte {
	if data := os.Getenv(envDataKey); data != "" {
		return []byte(data)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			return data
		}
	}
	return nil
}
