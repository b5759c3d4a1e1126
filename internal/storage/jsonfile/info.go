package jsonfile

import (
	"context"
	"os"

	models "github.com/dipdup-io/token-lists/internal/storage"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// ErrInfoNotFound - entry directory or its info.json was not created yet
var ErrInfoNotFound = errors.New("info file is not found")

// Info - per-entry info.json files under the images root
type Info struct {
	root string
}

// NewInfo -
func NewInfo(root string) *Info {
	return &Info{root: root}
}

// Path -
func (i *Info) Path(key models.Key) string {
	return models.InfoPath(i.root, key)
}

// Load - reads the record. The file has to exist, but an empty or broken file is an empty record.
func (i *Info) Load(ctx context.Context, key models.Key) (models.Info, error) {
	path := i.Path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(ErrInfoNotFound, path)
		}
		return nil, errors.Wrap(err, "reading info")
	}

	var info models.Info
	if err := json.UnmarshalContext(ctx, data, &info); err != nil || info == nil {
		return make(models.Info), nil
	}
	return info, nil
}

// Save - rewrites an existing record
func (i *Info) Save(ctx context.Context, key models.Key, info models.Info) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := i.Path(key)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.Wrap(ErrInfoNotFound, path)
		}
		return err
	}
	return errors.Wrapf(writeFile(path, info), "saving info %s", path)
}
