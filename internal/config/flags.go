package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/cadastro/internal/flagx"
)

var knownFlags = []string{"-l", "-d", "-dsn", "-dir", "-k", "-t", "-b", "-e", "-g"}

// parseFlags overlays cfg with the command-line flags listed in doc.go.
// Only those flags are taken from args, so -c/-config and anything else
// is ignored here. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("cadastro", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.StorageDriver, "d", cfg.StorageDriver, "storage driver")
	fs.StringVar(&cfg.StorageDSN, "dsn", cfg.StorageDSN, "sqlite path or postgres DSN")
	fs.StringVar(&cfg.StorageDir, "dir", cfg.StorageDir, "file driver root directory")
	fs.StringVar(&cfg.StorageKey, "k", cfg.StorageKey, "storage key")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "object store bucket")
	fs.StringVar(&cfg.S3Endpoint, "e", cfg.S3Endpoint, "object store endpoint")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "object store region")
	timeout := fs.Int("t", int(cfg.OpTimeout.Seconds()), "operation timeout (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.OpTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
