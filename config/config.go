package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	AES      AESConfig      `mapstructure:"aes"`
	Log      LogConfig      `mapstructure:"log"`
}

// AESConfig holds the at-rest encryption key for PaymentSession's
// sensitive fields (the received token, the raw completion request).
type AESConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded key for AES-256
}

// ServerConfig controls the listener and the reverse-proxy front door.
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	TargetURL      string        `mapstructure:"target_url"` // fallback single-backend target
	WorkerThreads  int           `mapstructure:"worker_threads"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// AuthConfig controls the proxy's own bearer-token gate (spec.md §4.1/§6).
type AuthConfig struct {
	AdminPassword    string   `mapstructure:"admin_password"`
	ProtectedMethods []string `mapstructure:"protected_methods"`
}

// PaymentConfig controls the PaymentEngine's blockchain-facing parameters.
type PaymentConfig struct {
	ServerSecret         string `mapstructure:"server_secret"` // hex, required; env SERVER_SECRET
	TrustBasePath        string `mapstructure:"trust_base_path"`
	AcceptedCoinID       string `mapstructure:"accepted_coin_id"` // hex
	MinimumPaymentAmount string `mapstructure:"minimum_payment_amount"`
	TokenTypeIDsURL      string `mapstructure:"token_type_ids_url"`
	TokenTypeName        string `mapstructure:"token_type_name"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: PROXY_.
// Nested keys use underscore: PROXY_DATABASE_HOST, PROXY_PAYMENT_ACCEPTED_COIN_ID, etc.
// Two bare (non-prefixed) variables are also honored, per spec.md §6: SERVER_SECRET,
// and the DB_URL/DB_USER/DB_PASSWORD triplet, applied after the prefixed lookup.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.target_url", "")
	v.SetDefault("server.worker_threads", 0)
	v.SetDefault("server.connect_timeout", "5s")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.idle_timeout", "3s")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "aggregator_proxy")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("auth.admin_password", "")
	v.SetDefault("auth.protected_methods", []string{"submit_commitment"})

	v.SetDefault("payment.server_secret", "")
	v.SetDefault("payment.trust_base_path", "")
	v.SetDefault("payment.accepted_coin_id", "")
	v.SetDefault("payment.minimum_payment_amount", "1000")
	v.SetDefault("payment.token_type_ids_url", "")
	v.SetDefault("payment.token_type_name", "unicity")

	v.SetDefault("aes.key", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: PROXY_DATABASE_HOST -> database.host
	v.SetEnvPrefix("PROXY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Bare, non-prefixed environment overrides spec.md §6 names explicitly.
	if secret := os.Getenv("SERVER_SECRET"); secret != "" {
		cfg.Payment.ServerSecret = secret
	}
	if val := os.Getenv("DB_URL"); val != "" {
		cfg.Database.Host = val
	}
	if val := os.Getenv("DB_USER"); val != "" {
		cfg.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		cfg.Database.Password = val
	}

	return &cfg, nil
}
