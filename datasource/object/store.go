package object

import (
	"context"
	"os"
)

// LocalStore reads the snapshot from the local filesystem.
type LocalStore struct {
	path string
}

// NewLocalStore creates a store over a local snapshot file.
func NewLocalStore(path string) *LocalStore {
	return &LocalStore{path: path}
}

func (s *LocalStore) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.path)
}
