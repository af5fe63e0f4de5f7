package cache

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrAlreadyExists = errors.New("key already exists")
)

type PutCondition int

const (
	PutAlways PutCondition = iota
	// PutIfNoneMatch fails with ErrAlreadyExists when the key is present.
	PutIfNoneMatch
)

type PutOptions struct {
	Condition PutCondition
}

func Unconditional() PutOptions {
	return PutOptions{Condition: PutAlways}
}

// Cache is the storage substrate the domain stores serialize JSON documents
// into. Keys use "/" as a logical separator so backends can map them to
// directories or prefixes.
type Cache interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
	Put(ctx context.Context, key, value string, opts PutOptions) error
	// List returns the keys under prefix with the prefix trimmed, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
