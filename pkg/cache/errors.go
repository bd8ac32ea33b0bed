package cache

import (
	"errors"
	"fmt"
)

// ErrCacheMiss is returned by Get when the key does not exist or has expired.
var ErrCacheMiss = errors.New("cache miss")

// CacheError wraps a failed store operation. Transient errors come from the
// backend; the rest from encoding.
type CacheError struct {
	Operation string
	Key       string
	Err       error
	Transient bool
}

func NewCacheError(operation, key string, err error, transient bool) *CacheError {
	return &CacheError{Operation: operation, Key: key, Err: err, Transient: transient}
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s %q: %v", e.Operation, e.Key, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a backend failure worth retrying later,
// as opposed to a miss or an undecodable value.
func IsTransient(err error) bool {
	var ce *CacheError
	return errors.As(err, &ce) && ce.Transient
}
