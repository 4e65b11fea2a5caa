package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Telegram TelegramConfig
	Sheets   SheetsConfig
	Roster   RosterConfig
	Gemini   GeminiConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// TelegramConfig configures the messaging notification channel. ChatID is
// passed through to the Bot API as-is; the service never parses it.
type TelegramConfig struct {
	BotToken       string
	ChatID         string
	PacingInterval time.Duration
	MaxBatchSize   int
}

// SheetsConfig configures the spreadsheet notification channel.
type SheetsConfig struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
}

// RosterConfig governs referral validation against the imported class roster.
// StrictValidation controls what happens when no roster has been imported yet:
// false keeps the bootstrap-permissive behaviour (every referral passes),
// true rejects referrals until a roster exists.
type RosterConfig struct {
	StrictValidation bool
	CacheTTL         time.Duration
}

// GeminiConfig configures AI-assisted document drafting.
type GeminiConfig struct {
	APIKey string
	Model  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Telegram = TelegramConfig{
		BotToken:       v.GetString("TELEGRAM_BOT_TOKEN"),
		ChatID:         v.GetString("TELEGRAM_CHAT_ID"),
		PacingInterval: parseDuration(v.GetString("TELEGRAM_PACING_INTERVAL"), time.Second),
		MaxBatchSize:   v.GetInt("TELEGRAM_MAX_BATCH_SIZE"),
	}

	cfg.Sheets = SheetsConfig{
		SpreadsheetID:   v.GetString("SHEETS_SPREADSHEET_ID"),
		SheetName:       v.GetString("SHEETS_SHEET_NAME"),
		CredentialsFile: v.GetString("SHEETS_CREDENTIALS_FILE"),
	}

	cfg.Roster = RosterConfig{
		StrictValidation: v.GetBool("ROSTER_STRICT_VALIDATION"),
		CacheTTL:         parseDuration(v.GetString("ROSTER_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Gemini = GeminiConfig{
		APIKey: v.GetString("GEMINI_API_KEY"),
		Model:  v.GetString("GEMINI_MODEL"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "rehberlik")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("TELEGRAM_BOT_TOKEN", "")
	v.SetDefault("TELEGRAM_CHAT_ID", "")
	v.SetDefault("TELEGRAM_PACING_INTERVAL", "1s")
	v.SetDefault("TELEGRAM_MAX_BATCH_SIZE", 30)

	v.SetDefault("SHEETS_SPREADSHEET_ID", "")
	v.SetDefault("SHEETS_SHEET_NAME", "Yönlendirmeler")
	v.SetDefault("SHEETS_CREDENTIALS_FILE", "")

	v.SetDefault("ROSTER_STRICT_VALIDATION", false)
	v.SetDefault("ROSTER_CACHE_TTL", "10m")

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
