package jsonfile

import (
	"context"
	"os"

	models "github.com/dipdup-io/token-lists/internal/storage"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// TokenList - token list document stored in a single JSON file
type TokenList struct {
	path string
}

// NewTokenList -
func NewTokenList(path string) *TokenList {
	return &TokenList{path: path}
}

// Path -
func (tl *TokenList) Path() string {
	return tl.path
}

// Load -
func (tl *TokenList) Load(ctx context.Context) (list models.TokenList, err error) {
	data, err := os.ReadFile(tl.path)
	if err != nil {
		return list, errors.Wrap(err, "reading token list")
	}
	if err := json.UnmarshalContext(ctx, data, &list); err != nil {
		return list, errors.Wrapf(err, "parsing token list %s", tl.path)
	}
	if list.Tokens == nil {
		list.Tokens = make([]models.Token, 0)
	}
	return list, nil
}

// Save -
func (tl *TokenList) Save(ctx context.Context, list models.TokenList) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if list.Tokens == nil {
		list.Tokens = make([]models.Token, 0)
	}
	return errors.Wrapf(writeFile(tl.path, list), "saving token list %s", tl.path)
}
