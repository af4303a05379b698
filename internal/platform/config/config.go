package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvProduction = "production"

type Config struct {
	Env      string
	APIPort  string
	LogLevel string

	JWTKey      []byte
	JWTExp      time.Duration
	RequireAuth bool

	CORSAllowedOrigins []string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	EventsQueueName string
}

// IsProduction reports whether internal error details must be hidden from clients.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("API_PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "defaultsecret")
	v.SetDefault("JWT_EXPIRATION_HOURS", 72)
	v.SetDefault("REQUIRE_AUTH", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "fitcontest")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("EVENTS_QUEUE_NAME", "contest_activity_events")
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	env := v.GetString("APP_ENV")
	if env == "" {
		env = v.GetString("NODE_ENV")
	}

	cfg := &Config{
		Env:                strings.ToLower(strings.TrimSpace(env)),
		APIPort:            v.GetString("API_PORT"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		JWTKey:             []byte(v.GetString("JWT_SECRET")),
		JWTExp:             time.Duration(v.GetInt("JWT_EXPIRATION_HOURS")) * time.Hour,
		RequireAuth:        v.GetBool("REQUIRE_AUTH"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		DBHost:             v.GetString("DB_HOST"),
		DBPort:             v.GetString("DB_PORT"),
		DBUser:             v.GetString("DB_USER"),
		DBPassword:         v.GetString("DB_PASSWORD"),
		DBName:             v.GetString("DB_NAME"),
		DBSslMode:          v.GetString("DB_SSLMODE"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		EventsQueueName:    v.GetString("EVENTS_QUEUE_NAME"),
	}

	if cfg.APIPort == "" {
		return nil, fmt.Errorf("config: API_PORT must not be empty")
	}
	if cfg.IsProduction() && string(cfg.JWTKey) == "defaultsecret" {
		return nil, fmt.Errorf("config: JWT_SECRET must be set in production")
	}

	cfg.DBConnStr = v.GetString("DATABASE_URL")
	if cfg.DBConnStr == "" {
		cfg.DBConnStr = "host=" + cfg.DBHost +
			" port=" + cfg.DBPort +
			" user=" + cfg.DBUser +
			" password=" + cfg.DBPassword +
			" dbname=" + cfg.DBName +
			" sslmode=" + cfg.DBSslMode
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
