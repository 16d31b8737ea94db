package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Environment string

const (
	Live Environment = "live"
	Beta Environment = "beta"
	Dev  Environment = "dev"
)

type CarafeConfig struct {
	Env      Environment
	Addr     string
	BaseUrl  string
	LogLevel zerolog.Level

	Postgres PostgresConfig
	Auth     AuthConfig
}

type PostgresConfig struct {
	User     string
	Password string
	Hostname string
	Port     int
	DbName   string
	LogLevel tracelog.LogLevel
	MinConn  int32
	MaxConn  int32
}

func (info PostgresConfig) DSN() string {
	return fmt.Sprintf("user=%s password=%s host=%s port=%d dbname=%s", info.User, info.Password, info.Hostname, info.Port, info.DbName)
}

type AuthConfig struct {
	CookieDomain string
	CookieSecure bool
}

var Config = func() CarafeConfig {
	// A .env file is optional; in production everything comes from the real
	// environment.
	godotenv.Load()

	logLevel, err := zerolog.ParseLevel(env("CARAFE_LOG_LEVEL", "info"))
	if err != nil {
		logLevel = zerolog.InfoLevel
	}

	return CarafeConfig{
		Env:      Environment(env("CARAFE_ENV", string(Dev))),
		Addr:     env("CARAFE_ADDR", ":9001"),
		BaseUrl:  env("CARAFE_BASE_URL", "http://localhost:9001"),
		LogLevel: logLevel,

		Postgres: PostgresConfig{
			User:     env("CARAFE_DB_USER", "carafe"),
			Password: env("CARAFE_DB_PASSWORD", "password"),
			Hostname: env("CARAFE_DB_HOST", "localhost"),
			Port:     envInt("CARAFE_DB_PORT", 5432),
			DbName:   env("CARAFE_DB_NAME", "carafe"),
			LogLevel: pgLogLevel(env("CARAFE_DB_LOG_LEVEL", "warn")),
			MinConn:  int32(envInt("CARAFE_DB_MIN_CONN", 2)),
			MaxConn:  int32(envInt("CARAFE_DB_MAX_CONN", 10)),
		},
		Auth: AuthConfig{
			CookieDomain: env("CARAFE_COOKIE_DOMAIN", "localhost"),
			CookieSecure: envBool("CARAFE_COOKIE_SECURE", false),
		},
	}
}()

func env(name, def string) string {
	if val, ok := os.LookupEnv(name); ok {
		return val
	}
	return def
}

func envInt(name string, def int) int {
	if val, ok := os.LookupEnv(name); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func pgLogLevel(name string) tracelog.LogLevel {
	level, err := tracelog.LogLevelFromString(name)
	if err != nil {
		return tracelog.LogLevelWarn
	}
	return level
}

func envBool(name string, def bool) bool {
	if val, ok := os.LookupEnv(name); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return def
}
