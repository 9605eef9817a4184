package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrInvalidPasswordPolicy reports password length bounds that no password
// could satisfy.
var ErrInvalidPasswordPolicy = errors.New("invalid password policy")

// DefaultStorageKey is the key under which the whole record collection lives.
const DefaultStorageKey = "@fromHook:cadastro"

// Config holds runtime settings for the cadastro CLI.
type Config struct {
	LogLevel string `env:"LOG_LEVEL"`

	StorageDriver string `env:"STORAGE_DRIVER"`
	StorageDSN    string `env:"STORAGE_DSN"`
	StorageDir    string `env:"STORAGE_DIR"`
	StorageKey    string `env:"STORAGE_KEY"`

	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Prefix    string `env:"S3_PREFIX"`
	S3UseSSL    bool   `env:"S3_USE_SSL"`

	OpTimeout time.Duration `env:"OP_TIMEOUT"`

	// Password length bounds enforced by the registration form.
	PasswordMinLen int `env:"PASSWORD_MIN_LEN"`
	PasswordMaxLen int `env:"PASSWORD_MAX_LEN"`
}

// LoadDefaults populates c with SQLite file storage, the @fromHook:cadastro
// key and 3 to 6 character passwords.
func (c *Config) LoadDefaults() {
	c.LogLevel = "info"
	c.StorageDriver = "sqlite"
	c.StorageDSN = "cadastro.db"
	c.StorageDir = "cadastro-data"
	c.StorageKey = DefaultStorageKey
	c.S3Bucket = "cadastro"
	c.S3Region = "us-east-1"
	c.S3Prefix = "kv/"
	c.OpTimeout = 5 * time.Second
	c.PasswordMinLen = 3
	c.PasswordMaxLen = 6
}

// LoadConfig builds a Config from defaults, then JSON, environment and flags.
// Later sources take precedence. Malformed input or a config that fails
// Validate panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseEnv(cfg)
	parseFlags(cfg, os.Args[1:])
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks settings that would otherwise fail later without a clear
// cause.
func (c *Config) Validate() error {
	switch {
	case c.PasswordMinLen < 0:
		return fmt.Errorf("%w: min length %d is negative", ErrInvalidPasswordPolicy, c.PasswordMinLen)
	case c.PasswordMaxLen < 1:
		return fmt.Errorf("%w: max length %d must be at least 1", ErrInvalidPasswordPolicy, c.PasswordMaxLen)
	case c.PasswordMinLen > c.PasswordMaxLen:
		return fmt.Errorf("%w: min length %d exceeds max length %d", ErrInvalidPasswordPolicy, c.PasswordMinLen, c.PasswordMaxLen)
	}
	return nil
}
