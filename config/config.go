package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Session  SessionConfig
	Security SecurityConfig
	CORS     CORSConfig
	Log      LogConfig
}

type AppConfig struct {
	Port string
	Env  string
	// NameTitle is prepended to a doctor's derived full name, e.g. "Dr.".
	NameTitle string
	// AutoMigrate applies pending schema migrations when the server starts.
	AutoMigrate bool
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

type SessionConfig struct {
	CookieName   string
	CookieSecure bool
	LoginPath    string
}

type SecurityConfig struct {
	BcryptCost       int
	LoginMaxAttempts int
	LoginAttemptsTTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME_TITLE", "")
	v.SetDefault("APP_AUTO_MIGRATE", true)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_EXPIRY", "720h")
	v.SetDefault("JWT_ISSUER", "doctor-portal")

	v.SetDefault("SESSION_COOKIE_NAME", "session_token")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("SESSION_LOGIN_PATH", "/login")

	v.SetDefault("SECURITY_BCRYPT_COST", 10)
	v.SetDefault("SECURITY_LOGIN_MAX_ATTEMPTS", 10)
	v.SetDefault("SECURITY_LOGIN_ATTEMPTS_TTL", "15m")

	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	v.SetDefault("LOG_LEVEL", "info")
}

// LoadConfig reads configuration from the optional .env file and the process
// environment. Environment variables win over the file.
func LoadConfig() (*Config, error) {
	return load(".env")
}

func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	jwtExpiry, err := time.ParseDuration(v.GetString("JWT_EXPIRY"))
	if err != nil {
		jwtExpiry = 30 * 24 * time.Hour
	}

	attemptsTTL, err := time.ParseDuration(v.GetString("SECURITY_LOGIN_ATTEMPTS_TTL"))
	if err != nil {
		attemptsTTL = 15 * time.Minute
	}

	cfg := &Config{
		App: AppConfig{
			Port:        v.GetString("APP_PORT"),
			Env:         v.GetString("APP_ENV"),
			NameTitle:   v.GetString("APP_NAME_TITLE"),
			AutoMigrate: v.GetBool("APP_AUTO_MIGRATE"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			TimeZone: v.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Expiry: jwtExpiry,
			Issuer: v.GetString("JWT_ISSUER"),
		},
		Session: SessionConfig{
			CookieName:   v.GetString("SESSION_COOKIE_NAME"),
			CookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
			LoginPath:    v.GetString("SESSION_LOGIN_PATH"),
		},
		Security: SecurityConfig{
			BcryptCost:       v.GetInt("SECURITY_BCRYPT_COST"),
			LoginMaxAttempts: v.GetInt("SECURITY_LOGIN_MAX_ATTEMPTS"),
			LoginAttemptsTTL: attemptsTTL,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
