package fetch

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/syssam/odatagen"
	"github.com/syssam/odatagen/internal/fsutil"
)

// FileCache keeps the metadata document in a local file.
type FileCache struct {
	Path string
}

var _ odatagen.Cache = (*FileCache)(nil)

// Get implements odatagen.Cache. A missing file is an empty cache.
func (c *FileCache) Get(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(c.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set implements odatagen.Cache. The file is replaced atomically.
func (c *FileCache) Set(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(c.Path, data, 0o644)
}
