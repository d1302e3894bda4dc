package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/ceilplan/pkg/errors"
)

// Open returns the cache backend named by rawURL:
//
//	""                       file cache in [DefaultDir]
//	"none"                   [NullCache]
//	"file:///path/to/dir"    file cache in that directory
//	"redis://…", "rediss://…"             [RedisCache]
//	"mongodb://…", "mongodb+srv://…"      [MongoCache]
func Open(ctx context.Context, rawURL string) (Cache, error) {
	switch {
	case rawURL == "":
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		return openFile(dir)
	case rawURL == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(rawURL, "file://"):
		dir := strings.TrimPrefix(rawURL, "file://")
		if dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "file cache URL needs a directory")
		}
		return openFile(dir)
	}

	if err := errors.ValidateCacheURL(rawURL); err != nil {
		return nil, err
	}
	var (
		c   Cache
		err error
	)
	if strings.HasPrefix(rawURL, "redis") {
		c, err = NewRedisCache(ctx, rawURL)
	} else {
		c, err = NewMongoCache(ctx, rawURL)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "open cache")
	}
	return c, nil
}

func openFile(dir string) (Cache, error) {
	fc, err := NewFileCache(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open cache dir %s", dir)
	}
	return fc, nil
}

// DefaultDir returns $XDG_CACHE_HOME/ceilplan, or ~/.cache/ceilplan.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "ceilplan"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "ceilplan"), nil
}
