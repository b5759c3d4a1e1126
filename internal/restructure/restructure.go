package restructure

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dipdup-io/token-lists/internal/storage"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const imageExt = ".png"

// DefaultChains - chains which had flat logo layout
var DefaultChains = []uint64{100, 1}

// emptyInfo - placeholder written to every new entry directory
var emptyInfo = []byte("{}")

// Config -
type Config struct {
	Root   string
	Chains []uint64
}

// Restructurer - moves `<chain>/<address>.png` into `<chain>/<address>/logo.png`
// and puts an empty info.json next to it.
type Restructurer struct {
	root   string
	chains []uint64
}

// New -
func New(cfg Config) *Restructurer {
	var (
		root   = "."
		chains = DefaultChains
	)
	if cfg.Root != "" {
		root = cfg.Root
	}
	if len(cfg.Chains) > 0 {
		chains = cfg.Chains
	}
	return &Restructurer{
		root:   root,
		chains: chains,
	}
}

// Run - the first filesystem error stops the migration
func (r *Restructurer) Run(ctx context.Context) (moved int, err error) {
	for _, chain := range r.chains {
		count, err := r.chain(ctx, chain)
		moved += count
		if err != nil {
			return moved, errors.Wrapf(err, "chain %d", chain)
		}
	}
	return moved, nil
}

func (r *Restructurer) chain(ctx context.Context, chain uint64) (int, error) {
	dir := filepath.Join(r.root, strconv.FormatUint(chain, 10))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	var moved int
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return moved, err
		}

		name := entry.Name()
		if !strings.HasSuffix(name, imageExt) {
			continue
		}
		address := strings.TrimSuffix(name, imageExt)
		if address == "" {
			log.Warn().Str("dir", dir).Msg("skipping image without address")
			continue
		}
		path := filepath.Join(dir, name)
		isFile, err := isRegular(path)
		if err != nil {
			return moved, err
		}
		log.Debug().Str("path", path).Bool("is_file", isFile).Msg("candidate")
		if !isFile {
			continue
		}

		if err := move(dir, address); err != nil {
			return moved, err
		}
		moved++
	}
	return moved, nil
}

func move(dir, entry string) error {
	target := filepath.Join(dir, entry)
	log.Info().Str("path", target).Msg("moving")

	if err := os.MkdirAll(target, 0o755); err != nil {
		return err
	}
	if err := os.Rename(target+imageExt, filepath.Join(target, storage.LogoFileName)); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(target, storage.InfoFileName), emptyInfo, 0o644)
}

// isRegular follows symlinks
func isRegular(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return stat.Mode().IsRegular(), nil
}
