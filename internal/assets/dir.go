package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

// DirLoader serves assets from a local directory. A URL maps to the file
// named by the last element of its path, so
// "https://host/wiki/File:Moon.jpg" is looked up as "<Root>/File:Moon.jpg".
type DirLoader struct {
	Root string
}

// Load implements Loader.
func (d DirLoader) Load(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := fileName(rawURL)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(d.Root, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, rawURL)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

func fileName(rawURL string) (string, error) {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	name := path.Base(p)
	if name == "." || name == "/" || name == ".." || name == "" {
		return "", fmt.Errorf("%w: no file name in %q", ErrNotFound, rawURL)
	}
	return name, nil
}
