package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/cadastro/internal/flagx"
	"github.com/dmitrijs2005/cadastro/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields let us
// tell "absent" from "zero" so a partial file only overrides what it names.
type JsonConfig struct {
	LogLevel       *string         `json:"log_level"`
	StorageDriver  *string         `json:"storage_driver"`
	StorageDSN     *string         `json:"storage_dsn"`
	StorageDir     *string         `json:"storage_dir"`
	StorageKey     *string         `json:"storage_key"`
	S3Bucket       *string         `json:"s3_bucket"`
	S3Region       *string         `json:"s3_region"`
	S3Endpoint     *string         `json:"s3_endpoint"`
	S3AccessKey    *string         `json:"s3_access_key"`
	S3SecretKey    *string         `json:"s3_secret_key"`
	S3Prefix       *string         `json:"s3_prefix"`
	S3UseSSL       *bool           `json:"s3_use_ssl"`
	OpTimeout      *timex.Duration `json:"op_timeout"`
	PasswordMinLen *int            `json:"password_min_len"`
	PasswordMaxLen *int            `json:"password_max_len"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// Without that flag it does nothing. Read or decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.StorageDriver, jc.StorageDriver)
	setIf(&cfg.StorageDSN, jc.StorageDSN)
	setIf(&cfg.StorageDir, jc.StorageDir)
	setIf(&cfg.StorageKey, jc.StorageKey)
	setIf(&cfg.S3Bucket, jc.S3Bucket)
	setIf(&cfg.S3Region, jc.S3Region)
	setIf(&cfg.S3Endpoint, jc.S3Endpoint)
	setIf(&cfg.S3AccessKey, jc.S3AccessKey)
	setIf(&cfg.S3SecretKey, jc.S3SecretKey)
	setIf(&cfg.S3Prefix, jc.S3Prefix)
	setIf(&cfg.S3UseSSL, jc.S3UseSSL)
	setIf(&cfg.PasswordMinLen, jc.PasswordMinLen)
	setIf(&cfg.PasswordMaxLen, jc.PasswordMaxLen)
	if jc.OpTimeout != nil {
		cfg.OpTimeout = jc.OpTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
