// Package config loads runtime configuration for the cadastro CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed with CADASTRO_ (see Config field tags).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-l string   log level: debug|info|warn|error
//	-d string   storage driver: sqlite|postgres|memory|file|s3|minio
//	-dsn string sqlite file path or postgres DSN
//	-dir string root directory for the file driver
//	-k string   storage key holding the record collection
//	-t int      per-operation timeout (seconds)
//	-b string   bucket for the s3/minio drivers
//	-e string   endpoint for the s3/minio drivers
//	-g string   region for the s3/minio drivers
//
// # JSON schema
//
// Durations use timex.Duration, so "5s" and integer nanoseconds both work:
//
//	{
//	  "log_level": "info",
//	  "storage_driver": "sqlite",
//	  "storage_dsn": "cadastro.db",
//	  "op_timeout": "5s",
//	  "password_min_len": 3,
//	  "password_max_len": 6
//	}
package config
