// Package config exposes process configuration read from the environment.
// Every getter falls back to a development default when its variable is unset.
package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"
	"time"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const (
	defaultSecretKey      = "test-recipe-service"
	defaultAlgorithm      = "HS256"
	defaultTokenTTL       = 30 * time.Minute
	defaultImagesDir      = "/usr/src/images"
	defaultListenPort     = 8000
	defaultLoginRateLimit = 20
)

var defaultRecipeTypes = []string{"salad", "first", "second", "soup", "dessert", "drink"}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("RECIPE_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("RECIPE_DEBUG") == "true"
}

// GetLogFolder returns the folder for the log file. An empty value disables file logging.
func GetLogFolder() string {
	return os.Getenv("RECIPE_LOG_FOLDER")
}

func GetListen() string {
	return os.Getenv("RECIPE_LISTEN")
}

func GetPort() int {
	return getInt("RECIPE_PORT", defaultListenPort)
}

// GetSecretKey returns the symmetric key used to sign access tokens.
func GetSecretKey() string {
	return getString("SECRET_KEY", defaultSecretKey)
}

// GetAlgorithm returns the token signing algorithm name, e.g. HS256.
func GetAlgorithm() string {
	return getString("ALGORITHM", defaultAlgorithm)
}

// GetAccessTokenTTL returns how long an issued token stays valid.
func GetAccessTokenTTL() time.Duration {
	minutes := getInt("ACCESS_TOKEN_EXPIRE_MINUTES", 0)
	if minutes <= 0 {
		return defaultTokenTTL
	}
	return time.Duration(minutes) * time.Minute
}

func GetImagesDir() string {
	return getString("BASE_DIR_IMAGES", defaultImagesDir)
}

// GetRecipeTypes returns the allowed recipe types, read as a comma separated list.
func GetRecipeTypes() []string {
	raw := os.Getenv("TYPES_RECIPE")
	if raw == "" {
		return append([]string(nil), defaultRecipeTypes...)
	}
	types := make([]string, 0)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}

// GetAdminCredentials returns the bootstrap admin account, if configured.
func GetAdminCredentials() (nickname string, password string) {
	return os.Getenv("RECIPE_ADMIN_NICKNAME"), os.Getenv("RECIPE_ADMIN_PASSWORD")
}

// GetLoginRateLimit returns the allowed login attempts per client per minute.
func GetLoginRateLimit() int {
	return getInt("RECIPE_LOGIN_RATE_LIMIT", defaultLoginRateLimit)
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
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
