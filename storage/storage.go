// Package storage provides the durable key/value backends that hold store
// snapshots and short-lived hand-off records.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under the key
var ErrNotFound = errors.New("storage: key not found")

// Storage is a durable key/value store. Put replaces any prior value.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Take reads a value and deletes it, so the record is consumed by its first reader
func Take(ctx context.Context, s Storage, key string) ([]byte, error) {
	value, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := s.Delete(ctx, key); err != nil {
		return nil, err
	}
	return value, nil
}
