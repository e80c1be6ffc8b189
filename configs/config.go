package configs

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"undangan.link/configs/configslog"
)

// LoadEnv reads .env if present. Real environments set variables directly,
// so a missing file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Info(".env file not found, using process environment")
	}
}

// GetEnv returns the variable or the given default when unset/empty.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetEnvInt returns the variable parsed as int, or the default.
func GetEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		configslog.SLog.Warnf("invalid integer for %s: %q, using default %d", key, v, def)
		return def
	}
	return n
}

// JWTSecret returns the token signing secret.
func JWTSecret() string {
	return GetEnv("JWT_SECRET", "undangan-dev-secret")
}

// MaskKey returns the at-rest obfuscation key. 16/24/32 bytes select the
// AES key size; the default is demo-grade only.
func MaskKey() string {
	return GetEnv("MASK_KEY", "undangan-mask-key-32-bytes-long!")
}
