package infra

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	PostgresURL string
	AutoMigrate bool

	JWTSecret string
	JWTTTL    time.Duration

	LogLevel  string
	LogFormat string

	PublicBaseURL    string
	StorageURL       string
	StorageDir       string
	StoragePublicURL string

	MapCountry      string
	RealtimeChannel string

	SMTP SMTPSettings

	EnrichProvider string
	OpenAIAPIKey   string
	OpenAIModel    string
	GeminiAPIKey   string
	GeminiModel    string
}

type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// LocalStorage reports whether uploads go to STORAGE_DIR and are served by this process.
func (c *Config) LocalStorage() bool { return c.StorageURL == "" }

func (s SMTPSettings) Enabled() bool { return s.Host != "" && s.From != "" }

// LoadConfig reads .env when present; real environment variables take precedence.
func LoadConfig() *Config {
	_ = godotenv.Load()

	publicBase := strings.TrimRight(getEnvWithDefault("PUBLIC_BASE_URL", "http://localhost:8080"), "/")

	return &Config{
		Port:        getEnvWithDefault("PORT", "8080"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		AutoMigrate: getEnvBool("AUTO_MIGRATE", true),

		JWTSecret: getEnvWithDefault("JWT_SECRET", "change-me"),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_MINUTES", 60)) * time.Minute,

		LogLevel:  getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvWithDefault("LOG_FORMAT", "json"),

		PublicBaseURL:    publicBase,
		StorageURL:       os.Getenv("STORAGE_URL"),
		StorageDir:       getEnvWithDefault("STORAGE_DIR", "./storage"),
		StoragePublicURL: getEnvWithDefault("STORAGE_PUBLIC_URL", publicBase+"/storage"),

		MapCountry:      getEnvWithDefault("MAP_COUNTRY", "Tunisia"),
		RealtimeChannel: getEnvWithDefault("REALTIME_CHANNEL", "tunitour_changes"),

		SMTP: SMTPSettings{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},

		EnrichProvider: strings.ToLower(getEnvWithDefault("ENRICH_PROVIDER", "none")),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash"),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
