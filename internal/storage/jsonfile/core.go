package jsonfile

import (
	"bytes"
	"os"
	"path/filepath"

	models "github.com/dipdup-io/token-lists/internal/storage"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// ErrEmptyListPath - list commands can not run without the list document
var ErrEmptyListPath = errors.New("empty token list path")

// Config -
type Config struct {
	ListPath   string
	ImagesRoot string
}

// Storage -
type Storage struct {
	TokenList models.ITokenList
	Info      models.IInfo
}

// Create -
func Create(cfg Config) (Storage, error) {
	if cfg.ListPath == "" {
		return Storage{}, ErrEmptyListPath
	}
	return Storage{
		TokenList: NewTokenList(cfg.ListPath),
		Info:      NewInfo(cfg.ImagesRoot),
	}, nil
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFile replaces the file content through a temporary file in the same directory,
// so readers see either the old or the new document.
func writeFile(path string, v any) error {
	data, err := marshal(v)
	if err != nil {
		return errors.Wrap(err, "encoding")
	}

	mode := os.FileMode(0o644)
	if stat, err := os.Stat(path); err == nil {
		mode = stat.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "chmod temp file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "rename temp file")
	}
	return nil
}
