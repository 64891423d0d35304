package config

import (
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port      int      `env:"PORT" envDefault:"8080"`
	Origins   []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	BaseURL   string   `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	UploadDir string   `env:"UPLOAD_DIR" envDefault:"static/profile_pics"`
}

type DatabaseConfig struct {
	// postgres | sqlite
	Driver      string `env:"DB_DRIVER" envDefault:"postgres"`
	DSN         string `env:"DATABASE_URL" envDefault:"host=localhost user=postgres dbname=jobboard sslmode=disable"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`
}

type RedisConfig struct {
	// Empty URL keeps sessions and rate limiting in process.
	URL string `env:"REDIS_URL"`
}

type AuthConfig struct {
	JWTSecret       string        `env:"JWT_SECRET,required"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	ResetTTL        time.Duration `env:"RESET_TOKEN_TTL" envDefault:"1800s"`
	RegistrationTTL time.Duration `env:"REGISTRATION_TOKEN_TTL" envDefault:"2h"`
	CookieName      string        `env:"SESSION_COOKIE" envDefault:"session"`
	CookieSecure    bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`

	// Seeds one Admin on boot when all three are set.
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

type IngestionConfig struct {
	TargetYear     string        `env:"INGEST_TARGET_YEAR"`
	RedFlags       []string      `env:"INGEST_RED_FLAGS" envSeparator:"|"`
	GitHubEndpoint string        `env:"GITHUB_JOBS_URL" envDefault:"https://jobs.github.com/positions.json"`
	MuseEndpoint   string        `env:"MUSE_JOBS_URL" envDefault:"https://www.themuse.com/api/public/jobs"`
	Timeout        time.Duration `env:"INGEST_HTTP_TIMEOUT" envDefault:"15s"`
	Schedule       string        `env:"INGEST_SCHEDULE" envDefault:"@every 6h"`
}

type PaymentConfig struct {
	VerifyURL   string        `env:"IPN_VERIFY_URL" envDefault:"https://ipnpb.sandbox.paypal.com/cgi-bin/webscr"`
	CheckoutURL string        `env:"PAYPAL_CHECKOUT_URL" envDefault:"https://www.sandbox.paypal.com/cgi-bin/webscr"`
	Business    string        `env:"PAYPAL_BUSINESS"`
	ItemName    string        `env:"PAYPAL_ITEM_NAME" envDefault:"Exclusive Membership"`
	Amount      string        `env:"PAYPAL_AMOUNT" envDefault:"9.99"`
	Currency    string        `env:"PAYPAL_CURRENCY" envDefault:"USD"`
	AuditLog    string        `env:"IPN_AUDIT_LOG" envDefault:"tmp/ipnout.txt"`
	Timeout     time.Duration `env:"IPN_VERIFY_TIMEOUT" envDefault:"15s"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" envDefault:"noreply@jobsbeyondborder.com"`
	FromName string `env:"SMTP_FROM_NAME" envDefault:"Jobs Beyond Border"`
	UseSSL   bool   `env:"SMTP_USE_SSL" envDefault:"false"`
}

type RateLimitConfig struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"10"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Ingestion IngestionConfig
	Payment   PaymentConfig
	SMTP      SMTPConfig
	RateLimit RateLimitConfig
}

func Load() (*Config, error) {
	// .env is optional; deployed environments set variables directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.Ingestion.TargetYear == "" {
		cfg.Ingestion.TargetYear = strconv.Itoa(time.Now().Year())
	}

	return cfg, nil
}
