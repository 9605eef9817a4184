package config

import (
	"github.com/caarlos0/env/v11"
)

const envPrefix = "CADASTRO_"

// parseEnv overlays cfg with CADASTRO_* environment variables. Unset
// variables leave the current values alone. Malformed values panic.
func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		panic(err)
	}
}
