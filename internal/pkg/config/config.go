package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   external credentials), security settings
// - default: Values common across all environments (timezone, timeouts,
//   booking policy), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Booking  BookingConfig
	PayPal   PayPalConfig
	Calendar CalendarConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"America/Toronto"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Toronto"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-18000"` // -5*60*60
}

type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

// BookingConfig is the explicit policy value object injected into the booking
// use cases. Everything the source system read from ambient settings at call
// time lives here.
type BookingConfig struct {
	TimeZone                string        `envconfig:"BOOKING_TIMEZONE" default:"America/Toronto"`
	SlotGranularity         time.Duration `envconfig:"BOOKING_SLOT_GRANULARITY" default:"30m"`
	BufferMinutes           int           `envconfig:"BOOKING_BUFFER_MINUTES" default:"30"`
	SessionDurationMinutes  int           `envconfig:"BOOKING_SESSION_DURATION_MINUTES" default:"30"`
	SingleSessionPriceCents int64         `envconfig:"BOOKING_SINGLE_SESSION_PRICE_CENTS" default:"15000"`
	Currencies              []string      `envconfig:"BOOKING_CURRENCIES" default:"USD,CAD"`
	CancellationNoticeHours int           `envconfig:"BOOKING_CANCELLATION_NOTICE_HOURS" default:"48"`
	CancellationFeeFraction float64       `envconfig:"BOOKING_CANCELLATION_FEE_FRACTION" default:"0.5"`
	ExternalCallTimeout     time.Duration `envconfig:"BOOKING_EXTERNAL_CALL_TIMEOUT" default:"10s"`
	ReadRetryAttempts       int           `envconfig:"BOOKING_READ_RETRY_ATTEMPTS" default:"2"`
	ReadRetryBackoff        time.Duration `envconfig:"BOOKING_READ_RETRY_BACKOFF" default:"200ms"`
}

func (c BookingConfig) Buffer() time.Duration {
	return time.Duration(c.BufferMinutes) * time.Minute
}

func (c BookingConfig) SessionDuration() time.Duration {
	return time.Duration(c.SessionDurationMinutes) * time.Minute
}

func (c BookingConfig) SupportsCurrency(currency string) bool {
	for _, cur := range c.Currencies {
		if strings.EqualFold(cur, currency) {
			return true
		}
	}
	return false
}

func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.TimeZone)
}

// PayPalConfig selects the live gateway when both credentials are present;
// otherwise the bootstrap wires the Null gateway.
type PayPalConfig struct {
	ClientID     string `envconfig:"PAYPAL_CLIENT_ID" default:""`
	ClientSecret string `envconfig:"PAYPAL_CLIENT_SECRET" default:""`
	Mode         string `envconfig:"PAYPAL_MODE" default:"sandbox"`
	BrandName    string `envconfig:"PAYPAL_BRAND_NAME" default:"WIMD Coaching"`
}

func (c PayPalConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

func (c PayPalConfig) BaseURL() string {
	if c.Mode == "live" {
		return "https://api-m.paypal.com"
	}
	return "https://api-m.sandbox.paypal.com"
}

type CalendarConfig struct {
	ServiceAccountKey string `envconfig:"GOOGLE_SERVICE_ACCOUNT_KEY" default:""`
	CalendarID        string `envconfig:"COACH_GOOGLE_CALENDAR_ID" default:"primary"`
	CoachEmail        string `envconfig:"COACH_EMAIL" default:""`
	CoachPhone        string `envconfig:"COACH_PHONE_NUMBER" default:""`
}

func (c CalendarConfig) Configured() bool {
	return c.ServiceAccountKey != ""
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "America/Toronto",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "America/Toronto",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: -18000,
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Booking: BookingConfig{
			TimeZone:                "America/Toronto",
			SlotGranularity:         30 * time.Minute,
			BufferMinutes:           30,
			SessionDurationMinutes:  30,
			SingleSessionPriceCents: 15000,
			Currencies:              []string{"USD", "CAD"},
			CancellationNoticeHours: 48,
			CancellationFeeFraction: 0.5,
			ExternalCallTimeout:     10 * time.Second,
			ReadRetryAttempts:       2,
			ReadRetryBackoff:        time.Millisecond,
		},
	}
}
