// Package storage provides the key-value string store the application
// persists its state to.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Store is a string key-value store. Get returns ErrNotFound for absent keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
