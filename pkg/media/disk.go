package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore writes images below a directory. References are slash-separated
// paths relative to that directory.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

func (s *DiskStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media dir: %v", err)
	}

	file := uuid.NewString() + "-" + SafeName(name)
	if err := os.WriteFile(filepath.Join(s.dir, file), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %v", err)
	}
	return file, nil
}

// SafeName reduces a URL or path to a short file name of safe characters.
func SafeName(name string) string {
	base := path.Base(strings.SplitN(strings.SplitN(name, "?", 2)[0], "#", 2)[0])
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
		if b.Len() >= 64 {
			break
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "image"
	}
	return out
}
