// Package storage defines the key-value store the record collection is
// persisted in, and opens one of the available drivers by name.
//
// Every driver follows the same contract: Get returns (nil, nil) for an
// absent key, Set upserts, Delete is idempotent, List returns every pair and
// Clear removes them all.
package storage

import (
	"context"
)

// Store is a flat byte-valued key-value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Close() error
}

// Updater is implemented by stores that can run a read-modify-write of one
// key atomically. fn receives the current value, nil when absent, and returns
// the value to store; an error from fn aborts the update.
type Updater interface {
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error
}

// Driver names a Store implementation.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverMemory   Driver = "memory"
	DriverFile     Driver = "file"
	DriverS3       Driver = "s3"
	DriverMinio    Driver = "minio"
)

// Drivers lists every driver Open understands.
func Drivers() []Driver {
	return []Driver{DriverSQLite, DriverPostgres, DriverMemory, DriverFile, DriverS3, DriverMinio}
}
