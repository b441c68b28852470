package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerPort  string `envconfig:"SERVER_PORT" default:"3000"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER" default:"hogwarts"`
	DBPassword  string `envconfig:"DB_PASSWORD" default:"hogwarts_dev_password"`
	DBName      string `envconfig:"DB_NAME" default:"hogwarts"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	JWTExpiry time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`

	CharacterAPIURL   string        `envconfig:"CHARACTER_API_URL" default:"https://hp-api.onrender.com"`
	HTTPClientTimeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"15s"`

	LLMProvider  string `envconfig:"LLM_PROVIDER" default:"groq"`
	GroqAPIKey   string `envconfig:"GROQ_API_KEY"`
	GroqBaseURL  string `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
	GroqModel    string `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"EMAIL_USER"`
	SMTPPassword string `envconfig:"EMAIL_PASS"`
	MailFromName string `envconfig:"MAIL_FROM_NAME" default:"Sorting Hat AI"`

	GoogleClientID string `envconfig:"GOOGLE_CLIENT_ID"`

	CORSOrigins    []string `envconfig:"CORS_ORIGINS" default:"*"`
	RateLimitRPS   float64  `envconfig:"RATE_LIMIT_RPS" default:"1"`
	RateLimitBurst int      `envconfig:"RATE_LIMIT_BURST" default:"5"`
	TrustedProxy   bool     `envconfig:"TRUSTED_PROXY" default:"false"`
}

const defaultJWTSecret = "dev-secret-change-me"


// Load reads the optional .env file(s) and then the process environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.LLMProvider {
	case "groq", "gemini":
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret) {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.JWTExpiry <= 0 {
		return errors.New("JWT_EXPIRY must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// DSN returns DATABASE_URL when set, otherwise builds one from the DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// MailEnabled reports whether SMTP credentials are configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPUsername != "" && c.SMTPPassword != ""
}
