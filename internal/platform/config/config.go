package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	RunMigrations bool
	LogLevel      slog.Level

	// Auth is disabled when JWTSecret is empty.
	JWTSecret string
	JWTIssuer string

	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string

	DefaultCurrency        string
	EntryListDefaultLimit  int
	TaxonomySearchMaxLimit int
	TaxonomyCSVDelimiter   rune
	DBStatementTimeout     time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DEFAULT_CURRENCY", "EUR")
	v.SetDefault("ENTRY_LIST_DEFAULT_LIMIT", 25)
	v.SetDefault("TAXONOMY_SEARCH_MAX_LIMIT", 200)
	v.SetDefault("TAXONOMY_CSV_DELIMITER", ";")
	v.SetDefault("DB_STATEMENT_TIMEOUT", "30s")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:            v.GetString("PGSQL_URL"),
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:          v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:          v.GetBool("RUN_MIGRATIONS"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTIssuer:              v.GetString("JWT_ISSUER"),
		RateLimit:              v.GetString("RATE_LIMIT"),
		EntryListDefaultLimit:  v.GetInt("ENTRY_LIST_DEFAULT_LIMIT"),
		TaxonomySearchMaxLimit: v.GetInt("TAXONOMY_SEARCH_MAX_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set, API authentication is disabled")
	}

	level, err := ParseLogLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.DefaultCurrency = strings.ToUpper(strings.TrimSpace(v.GetString("DEFAULT_CURRENCY")))
	if money.GetCurrency(cfg.DefaultCurrency) == nil {
		return nil, fmt.Errorf("invalid DEFAULT_CURRENCY %q: not an ISO 4217 code", cfg.DefaultCurrency)
	}

	delimiter, err := ParseDelimiter(v.GetString("TAXONOMY_CSV_DELIMITER"))
	if err != nil {
		return nil, fmt.Errorf("invalid TAXONOMY_CSV_DELIMITER: %w", err)
	}
	cfg.TaxonomyCSVDelimiter = delimiter

	timeoutStr := v.GetString("DB_STATEMENT_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 30 * time.Second
		slog.Warn("Invalid DB_STATEMENT_TIMEOUT, using default", slog.String("value", timeoutStr), slog.Duration("default", timeout))
	}
	cfg.DBStatementTimeout = timeout

	if cfg.EntryListDefaultLimit <= 0 {
		cfg.EntryListDefaultLimit = 25
	}
	if cfg.TaxonomySearchMaxLimit <= 0 {
		cfg.TaxonomySearchMaxLimit = 200
	}

	return cfg, nil
}

// ParseLogLevel accepts debug, info, warn or error (case-insensitive).
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

// ParseDelimiter accepts a single character; the literal words "tab" and "\t" mean a tab.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("expected a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("%q cannot be used as a delimiter", s)
	}
	return r, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
