// Package config loads server settings from the environment.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig wraps every failure to decode the environment.
var ErrParsingConfig = errors.New("failed to parse config")

// Server holds everything the serve and mcp commands need.
type Server struct {
	Addr          string        `env:"TABLEFSM_ADDR" envDefault:":8080"`
	RedisAddr     string        `env:"TABLEFSM_REDIS_ADDR"`
	RedisPassword string        `env:"TABLEFSM_REDIS_PASSWORD"`
	RedisDB       int           `env:"TABLEFSM_REDIS_DB" envDefault:"0"`
	SessionTTL    time.Duration `env:"TABLEFSM_SESSION_TTL" envDefault:"0s"`
	KeyPrefix     string        `env:"TABLEFSM_KEY_PREFIX" envDefault:"tablefsm:session:"`
	LogLevel      string        `env:"TABLEFSM_LOG_LEVEL" envDefault:"info"`
	MaxInputSize  int           `env:"TABLEFSM_MAX_INPUT_SIZE" envDefault:"4096"`

	// EncryptionKey is a base64 AES-256 key. When set, session contexts are
	// encrypted at rest; FallbackKeys still decrypt during rotation.
	EncryptionKey string   `env:"TABLEFSM_ENCRYPTION_KEY"`
	FallbackKeys  []string `env:"TABLEFSM_ENCRYPTION_FALLBACK_KEYS" envSeparator:","`

	// MaskKeys are patterns for context keys masked before storage.
	MaskKeys []string `env:"TABLEFSM_MASK_KEYS" envSeparator:","`
}

// UsesRedis reports whether sessions should be stored in Redis.
func (s Server) UsesRedis() bool {
	return s.RedisAddr != ""
}

// Keys decodes the encryption keys. It returns a nil active key when
// encryption is disabled.
func (s Server) Keys() (active []byte, fallback [][]byte, err error) {
	if s.EncryptionKey == "" {
		return nil, nil, nil
	}
	if active, err = decodeKey(s.EncryptionKey); err != nil {
		return nil, nil, fmt.Errorf("%w: TABLEFSM_ENCRYPTION_KEY: %w", ErrParsingConfig, err)
	}
	for i, k := range s.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: TABLEFSM_ENCRYPTION_FALLBACK_KEYS[%d]: %w", ErrParsingConfig, i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

// Load reads the optional dotenv files (".env" when none are given) and
// parses the environment into a Server. Variables already set in the process
// environment win over file values.
func Load(files ...string) (Server, error) {
	if len(files) == 0 {
		// A missing .env is fine.
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return Server{}, fmt.Errorf("failed to load env files: %w", err)
	}

	cfg, err := env.ParseAs[Server]()
	if err != nil {
		return Server{}, errors.Join(ErrParsingConfig, err)
	}
	if cfg.RedisDB < 0 {
		return Server{}, fmt.Errorf("%w: TABLEFSM_REDIS_DB must not be negative", ErrParsingConfig)
	}
	if _, _, err := cfg.Keys(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}
