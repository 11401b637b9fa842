package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ericogr/arena-battles/internal/constants"
	"github.com/ericogr/arena-battles/internal/dedupe"
	"github.com/ericogr/arena-battles/internal/logging"
)

// ErrFileNotFound is returned when the products file does not exist.
var ErrFileNotFound = errors.New("products file not found")

// Catalog serves the static product list. The file is read on every call
// so edits show up without a restart; concurrent reads share one load.
type Catalog struct {
	path string
}

func New(path string) *Catalog {
	return &Catalog{path: path}
}

func (c *Catalog) Path() string { return c.path }

// Products returns the entries of the JSON array stored in the file,
// untouched.
func (c *Catalog) Products(ctx context.Context) ([]json.RawMessage, error) {
	ch := dedupe.CatalogGroup.DoChan(c.path, func() (interface{}, error) {
		return load(c.path)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logging.Debug("products load shared", logging.Fields{constants.LogFieldKey: c.path})
		}
		return res.Val.([]json.RawMessage), nil
	}
}

func load(path string) ([]json.RawMessage, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read products file %s: %w", path, err)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("failed to parse products file %s: %w", path, err)
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items, nil
}
