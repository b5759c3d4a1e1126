package storage

import (
	"context"
	"path/filepath"
	"strconv"
)

// info.json keys
const (
	InfoRemoved  = "removed"
	InfoAddress  = "address"
	InfoSymbol   = "symbol"
	InfoName     = "name"
	InfoLogoURI  = "logoURI"
	InfoReason   = "reason"
	InfoDecimals = "decimals"
	InfoChainID  = "chainId"
)

// file names inside an entry directory
const (
	InfoFileName = "info.json"
	LogoFileName = "logo.png"
)

// IInfo -
type IInfo interface {
	Load(ctx context.Context, key Key) (Info, error)
	Save(ctx context.Context, key Key, info Info) error
}

// Info - per-entry metadata record. Keys which are unknown to the helper are kept as is.
type Info map[string]any

// Removed -
func (info Info) Removed() bool {
	removed, ok := info[InfoRemoved].(bool)
	return ok && removed
}

// InfoPath - `<root>/<chainId>/<address>/info.json`
func InfoPath(root string, key Key) string {
	return filepath.Join(EntryDir(root, key), InfoFileName)
}

// EntryDir -
func EntryDir(root string, key Key) string {
	return filepath.Join(root, strconv.FormatUint(key.ChainID, 10), key.Address)
}
