// Package kv is the durable key-value store the application seeds from at start
// and writes to after every mutation. Values are opaque JSON documents.
package kv

import (
	"context"
	"errors"
)

type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

var ErrClosed = errors.New("kv: store closed")

// Store writes are synchronous and all-or-nothing per Save call.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, entries map[string][]byte) error
	Clear(ctx context.Context) error
	Close() error
	Driver() Driver
}
