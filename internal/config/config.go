package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingSecret  = errors.New("SECRET_KEY must be set")
	ErrUnknownDriver  = errors.New("unknown DB_DRIVER")
	ErrInvalidSetting = errors.New("invalid setting")
)

// Supported values for DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config is built once at startup and handed to the components that need it.
// Nothing in the process mutates it after Load returns.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	SecretKey  []byte
	TokenTTL   time.Duration
	BcryptCost int

	DBDriver    string
	DatabaseDSN string
	AutoMigrate bool

	StrongPasswords bool

	// TrustProxy makes the client IP come from forwarding headers.
	TrustProxy         bool
	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
}

// IsProduction reports whether the process runs with ENV=production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	env := func(key, fallback string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		Port:     env("PORT", "8080"),
		Env:      env("ENV", "development"),
		LogLevel: strings.ToLower(env("LOG_LEVEL", "info")),
		DBDriver: strings.ToLower(env("DB_DRIVER", DriverPostgres)),
	}

	secret := env("SECRET_KEY", env("JWT_SECRET", ""))
	if secret == "" {
		return Config{}, ErrMissingSecret
	}
	cfg.SecretKey = []byte(secret)

	var err error
	if cfg.TokenTTL, err = parseDuration(env("TOKEN_TTL", "60m")); err != nil {
		return Config{}, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive: %w", ErrInvalidSetting)
	}
	if cfg.BcryptCost, err = parseInt(env("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost))); err != nil {
		return Config{}, fmt.Errorf("BCRYPT_COST: %w", err)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST %d out of range: %w", cfg.BcryptCost, ErrInvalidSetting)
	}
	if cfg.AutoMigrate, err = parseBool(env("AUTO_MIGRATE", "true")); err != nil {
		return Config{}, fmt.Errorf("AUTO_MIGRATE: %w", err)
	}
	if cfg.StrongPasswords, err = parseBool(env("STRONG_PASSWORDS", "false")); err != nil {
		return Config{}, fmt.Errorf("STRONG_PASSWORDS: %w", err)
	}
	if cfg.TrustProxy, err = parseBool(env("TRUST_PROXY", "false")); err != nil {
		return Config{}, fmt.Errorf("TRUST_PROXY: %w", err)
	}
	if cfg.AuthRateLimitRPS, err = strconv.ParseFloat(env("AUTH_RATE_LIMIT_RPS", "5"), 64); err != nil {
		return Config{}, fmt.Errorf("AUTH_RATE_LIMIT_RPS: %w", ErrInvalidSetting)
	}
	if cfg.AuthRateLimitBurst, err = parseInt(env("AUTH_RATE_LIMIT_BURST", "10")); err != nil {
		return Config{}, fmt.Errorf("AUTH_RATE_LIMIT_BURST: %w", err)
	}

	if dsn := env("DATABASE_DSN", ""); dsn != "" {
		cfg.DatabaseDSN = dsn
	} else {
		cfg.DatabaseDSN, err = buildDSN(cfg.DBDriver,
			env("DB_USER", ""), env("DB_PASSWORD", ""), env("DB_HOST", "localhost"), env("DB_NAME", "todos"))
		if err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// buildDSN assembles a connection string for the given driver from its parts.
func buildDSN(driver, user, password, host, name string) (string, error) {
	switch driver {
	case DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(user, password),
			Host:   host,
			Path:   "/" + name,
		}
		return u.String(), nil
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = user
		mc.Passwd = password
		mc.Net = "tcp"
		mc.Addr = host
		mc.DBName = name
		return mc.FormatDSN(), nil
	case DriverSQLite:
		if !strings.HasSuffix(name, ".db") {
			name += ".db"
		}
		return "file:" + name + "?_pragma=foreign_keys(1)", nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownDriver, driver)
	}
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, ErrInvalidSetting
	}
	return d, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidSetting
	}
	return n, nil
}

func parseBool(s string) (bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, ErrInvalidSetting
	}
	return b, nil
}
