package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cadastro/internal/common"
	"github.com/dmitrijs2005/cadastro/internal/storage/file"
	"github.com/dmitrijs2005/cadastro/internal/storage/memory"
	"github.com/dmitrijs2005/cadastro/internal/storage/minio"
	"github.com/dmitrijs2005/cadastro/internal/storage/postgres"
	"github.com/dmitrijs2005/cadastro/internal/storage/s3"
	"github.com/dmitrijs2005/cadastro/internal/storage/sqlite"
)

// Config carries the settings any driver may need. Each driver reads only
// the fields it cares about.
type Config struct {
	Driver Driver

	// DSN is the SQLite file path or the Postgres connection string.
	DSN string
	// Dir is the root directory of the file driver.
	Dir string

	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
	UseSSL    bool
}

// Open connects to the store selected by cfg.Driver. An empty driver means
// SQLite.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		s, err := sqlite.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil

	case DriverPostgres:
		s, err := postgres.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil

	case DriverMemory:
		return memory.New(), nil

	case DriverFile:
		s, err := file.New(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil

	case DriverS3:
		s, err := s3.Open(ctx, s3.Config{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Prefix:    cfg.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return s, nil

	case DriverMinio:
		s, err := minio.Open(ctx, minio.Config{
			Endpoint:  cfg.Endpoint,
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Prefix:    cfg.Prefix,
			UseSSL:    cfg.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	return nil, fmt.Errorf("%w: %q", common.ErrorUnknownDriver, cfg.Driver)
}
