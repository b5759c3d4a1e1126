package storage

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/goccy/go-json"
)

// ITokenList -
type ITokenList interface {
	Load(ctx context.Context) (TokenList, error)
	Save(ctx context.Context, list TokenList) error
}

// token keys
const (
	tokenAddress  = "address"
	tokenSymbol   = "symbol"
	tokenName     = "name"
	tokenDecimals = "decimals"
	tokenChainID  = "chainId"
	tokenLogoURI  = "logoURI"
	listTokens    = "tokens"
)

// Token - one entry of the shared token list. Keys which are not modelled here
// (tags, extensions, ...) are kept in their original position.
type Token struct {
	Address  string
	Symbol   string
	Name     string
	Decimals uint64
	ChainID  uint64
	LogoURI  string

	raw object
}

type tokenFields struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals uint64 `json:"decimals"`
	ChainID  uint64 `json:"chainId"`
	LogoURI  string `json:"logoURI"`
}

// UnmarshalJSON -
func (t *Token) UnmarshalJSON(data []byte) error {
	var fields tokenFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	raw, err := readObject(data, tokenAddress, tokenSymbol, tokenName, tokenDecimals, tokenChainID, tokenLogoURI)
	if err != nil {
		return err
	}
	*t = Token{
		Address:  fields.Address,
		Symbol:   fields.Symbol,
		Name:     fields.Name,
		Decimals: fields.Decimals,
		ChainID:  fields.ChainID,
		LogoURI:  fields.LogoURI,
		raw:      raw,
	}
	return nil
}

// MarshalJSON -
func (t Token) MarshalJSON() ([]byte, error) {
	return t.raw.write(
		field{tokenAddress, t.Address},
		field{tokenSymbol, t.Symbol},
		field{tokenName, t.Name},
		field{tokenDecimals, t.Decimals},
		field{tokenChainID, t.ChainID},
		field{tokenLogoURI, t.LogoURI},
	)
}

// Extra - raw value of a key which is not modelled by Token
func (t Token) Extra(key string) (json.RawMessage, bool) {
	value, ok := t.raw.extra[key]
	return value, ok
}

// Key -
func (t Token) Key() Key {
	return NewKey(t.ChainID, t.Address)
}

// TokenList - shared list document. Everything except `tokens` is kept as is.
type TokenList struct {
	Tokens []Token

	raw object
}

// UnmarshalJSON -
func (list *TokenList) UnmarshalJSON(data []byte) error {
	var fields struct {
		Tokens []Token `json:"tokens"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	raw, err := readObject(data, listTokens)
	if err != nil {
		return err
	}
	list.Tokens = fields.Tokens
	list.raw = raw
	return nil
}

// MarshalJSON -
func (list TokenList) MarshalJSON() ([]byte, error) {
	tokens := list.Tokens
	if tokens == nil {
		tokens = make([]Token, 0)
	}
	return list.raw.write(field{listTokens, tokens})
}

// Extra - raw value of a header key, e.g. `name` or `version`
func (list TokenList) Extra(key string) (json.RawMessage, bool) {
	value, ok := list.raw.extra[key]
	return value, ok
}

// Find - returns index of the entry with the same chain id and address or -1
func (list TokenList) Find(key Key) int {
	for i := range list.Tokens {
		if list.Tokens[i].Key() == key {
			return i
		}
	}
	return -1
}

// Sort - orders entries by chain id, then by lower-cased address
func (list *TokenList) Sort() {
	slices.SortStableFunc(list.Tokens, func(a, b Token) int {
		return a.Key().Compare(b.Key())
	})
}

// IsSorted -
func (list TokenList) IsSorted() bool {
	return slices.IsSortedFunc(list.Tokens, func(a, b Token) int {
		return a.Key().Compare(b.Key())
	})
}

// Key - identity of an entry
type Key struct {
	ChainID uint64
	Address string
}

// NewKey -
func NewKey(chainID uint64, address string) Key {
	return Key{
		ChainID: chainID,
		Address: NormalizeAddress(address),
	}
}

// Compare -
func (k Key) Compare(other Key) int {
	if c := cmp.Compare(k.ChainID, other.ChainID); c != 0 {
		return c
	}
	return strings.Compare(k.Address, other.Address)
}
