// Package media persists listing photos.
package media

import (
	"context"
)

// Store saves raw image bytes and returns a reference to the stored copy.
type Store interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}
