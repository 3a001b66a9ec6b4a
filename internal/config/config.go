package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// JWT holds the token issuer settings. A single process-wide secret signs
// every token kind; rotation is a deploy, not a runtime operation.
type JWT struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	ResetTTL   time.Duration
}

// Tenancy holds defaults applied to newly onboarded tenants.
type Tenancy struct {
	DefaultMaxUsers  int
	TrialDays        int
	DefaultStorageGB int
}

// Config is built once in main and handed to constructors. Services never
// read the environment themselves.
type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	RedisAddr   string
	KafkaBroker string
	ViaCEPURL   string

	JWT     JWT
	Tenancy Tenancy
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the environment into a Config. Only the JWT secret is required;
// everything else has a development default.
func Load() (Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	cfg := Config{
		Env:         getenv("APP_ENV", "development"),
		Port:        getenv("PORT", "8000"),
		DatabaseURL: getenv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=hubb_assist port=5432 sslmode=disable"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		ViaCEPURL:   getenv("VIACEP_API_URL", "https://viacep.com.br"),
		JWT: JWT{
			Secret:     secret,
			AccessTTL:  time.Duration(getenvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 15)) * time.Minute,
			RefreshTTL: time.Duration(getenvInt("REFRESH_TOKEN_EXPIRE_HOURS", 24)) * time.Hour,
			ResetTTL:   time.Duration(getenvInt("PASSWORD_RESET_TOKEN_EXPIRE_HOURS", 24)) * time.Hour,
		},
		Tenancy: Tenancy{
			DefaultMaxUsers:  getenvInt("DEFAULT_MAX_USERS", 10),
			TrialDays:        getenvInt("TRIAL_DAYS", 30),
			DefaultStorageGB: getenvInt("DEFAULT_MAX_STORAGE_GB", 5),
		},
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
