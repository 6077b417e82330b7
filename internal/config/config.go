package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	LogFormat   string

	DatabaseURL string

	RedisURL  string
	BusDriver string

	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	MinIOEndpoint       string
	MinIOPublicEndpoint string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOBucket         string
	MinIOUseSSL         bool
	MinIOPublicUseSSL   bool

	CORSOrigins string

	// ProtectEventWrites limits event create/update/delete to admins.
	ProtectEventWrites bool

	ResendAPIKey string
	FromEmail    string
	Domain       string

	Scoring ScoringWeights
}

type ScoringWeights struct {
	Skill        float64
	OpenEvent    float64
	Urgency      float64
	Location     float64
	Availability float64
}

const (
	BusLocal = "local"
	BusRedis = "redis"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_URL", "redis://localhost:6379")
	v.SetDefault("BUS_DRIVER", BusLocal)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ACCESS_EXPIRY", 15*time.Minute)
	v.SetDefault("JWT_REFRESH_EXPIRY", 7*24*time.Hour)

	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_PUBLIC_ENDPOINT", "")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_BUCKET", "volunteer-avatars")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MINIO_PUBLIC_USE_SSL", true)

	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("PROTECT_EVENT_WRITES", false)

	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("FROM_EMAIL", "noreply@example.com")
	v.SetDefault("DOMAIN", "localhost:5173")

	v.SetDefault("SCORING_SKILL_WEIGHT", 60.0)
	v.SetDefault("SCORING_OPEN_EVENT_WEIGHT", 30.0)
	v.SetDefault("SCORING_URGENCY_WEIGHT", 5.0)
	v.SetDefault("SCORING_LOCATION_WEIGHT", 20.0)
	v.SetDefault("SCORING_AVAILABILITY_WEIGHT", 10.0)
}

// Load reads configuration from defaults, an optional config file and the
// environment, in increasing order of precedence. An empty path searches the
// working directory for config.yaml.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	publicEndpoint := v.GetString("MINIO_PUBLIC_ENDPOINT")
	if publicEndpoint == "" {
		publicEndpoint = v.GetString("MINIO_ENDPOINT")
	}

	cfg := &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		LogFormat:   v.GetString("LOG_FORMAT"),

		DatabaseURL: v.GetString("DATABASE_URL"),

		RedisURL:  v.GetString("REDIS_URL"),
		BusDriver: strings.ToLower(v.GetString("BUS_DRIVER")),

		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTAccessExpiry:  v.GetDuration("JWT_ACCESS_EXPIRY"),
		JWTRefreshExpiry: v.GetDuration("JWT_REFRESH_EXPIRY"),

		MinIOEndpoint:       v.GetString("MINIO_ENDPOINT"),
		MinIOPublicEndpoint: publicEndpoint,
		MinIOAccessKey:      v.GetString("MINIO_ACCESS_KEY"),
		MinIOSecretKey:      v.GetString("MINIO_SECRET_KEY"),
		MinIOBucket:         v.GetString("MINIO_BUCKET"),
		MinIOUseSSL:         v.GetBool("MINIO_USE_SSL"),
		MinIOPublicUseSSL:   v.GetBool("MINIO_PUBLIC_USE_SSL"),

		CORSOrigins:        v.GetString("CORS_ORIGINS"),
		ProtectEventWrites: v.GetBool("PROTECT_EVENT_WRITES"),

		ResendAPIKey: v.GetString("RESEND_API_KEY"),
		FromEmail:    v.GetString("FROM_EMAIL"),
		Domain:       v.GetString("DOMAIN"),

		Scoring: ScoringWeights{
			Skill:        v.GetFloat64("SCORING_SKILL_WEIGHT"),
			OpenEvent:    v.GetFloat64("SCORING_OPEN_EVENT_WEIGHT"),
			Urgency:      v.GetFloat64("SCORING_URGENCY_WEIGHT"),
			Location:     v.GetFloat64("SCORING_LOCATION_WEIGHT"),
			Availability: v.GetFloat64("SCORING_AVAILABILITY_WEIGHT"),
		},
	}

	return cfg, nil
}

// Validate checks the settings the HTTP server cannot start without.
func (c *Config) Validate() error {
	var problems []string
	if c.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if c.BusDriver != BusLocal && c.BusDriver != BusRedis {
		problems = append(problems, fmt.Sprintf("BUS_DRIVER must be %q or %q", BusLocal, BusRedis))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
