package payload

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dipdup-io/token-lists/internal/storage"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// payload keys
const (
	KeyAddress  = "address"
	KeyChainID  = "chainId"
	KeySymbol   = "symbol"
	KeyName     = "name"
	KeyLogoURI  = "logoURI"
	KeyDecimals = "decimals"
	KeyReason   = "reason"
)

// errors
var (
	ErrMissingField  = errors.New("missing field")
	ErrInvalidNumber = errors.New("invalid number")
	ErrInvalidString = errors.New("invalid string")
)

// Payload - request fields as they come from the workflow. Every field is optional
// until an operation asks for it.
type Payload map[string]any

// Load - reads payload from JSON file
func Load(path string) (Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening payload")
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing payload %s", path)
	}
	return p, nil
}

// Decode - numbers are kept as json.Number and converted on demand
func Decode(r io.Reader) (Payload, error) {
	var p Payload
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	if p == nil {
		p = make(Payload)
	}
	return p, nil
}

// Parse -
func Parse(data []byte) (Payload, error) {
	return Decode(bytes.NewReader(data))
}

// Has - field is present and truthy
func (p Payload) Has(key string) bool {
	value, ok := p[key]
	if !ok {
		return false
	}
	return truthy(value)
}

// String - string value of the field. Numbers are formatted, absent field is an empty string.
func (p Payload) String(key string) (string, error) {
	value, ok := p[key]
	if !ok || value == nil {
		return "", nil
	}
	switch typ := value.(type) {
	case string:
		return typ, nil
	case json.Number:
		return typ.String(), nil
	case bool:
		return fmt.Sprintf("%t", typ), nil
	default:
		return "", errors.Wrapf(ErrInvalidString, "%s: %v", key, value)
	}
}

// RequiredString -
func (p Payload) RequiredString(key string) (string, error) {
	value, err := p.String(key)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", errors.Wrap(ErrMissingField, key)
	}
	return value, nil
}

// Uint - non-negative integer field. Absent field is zero.
func (p Payload) Uint(key string) (uint64, error) {
	value, ok := p[key]
	if !ok || value == nil {
		return 0, nil
	}
	number, err := ToUint(value)
	if err != nil {
		return 0, errors.Wrap(err, key)
	}
	return number, nil
}

// RequiredUint -
func (p Payload) RequiredUint(key string) (uint64, error) {
	if value, ok := p[key]; !ok || value == nil || value == "" {
		return 0, errors.Wrap(ErrMissingField, key)
	}
	return p.Uint(key)
}

// Address - lower-cased address, required
func (p Payload) Address() (string, error) {
	address, err := p.RequiredString(KeyAddress)
	if err != nil {
		return "", err
	}
	return storage.NormalizeAddress(address), nil
}

// ChainID - required
func (p Payload) ChainID() (uint64, error) {
	return p.RequiredUint(KeyChainID)
}

// Key - entry identity built from address and chain id
func (p Payload) Key() (storage.Key, error) {
	address, err := p.Address()
	if err != nil {
		return storage.Key{}, err
	}
	chainID, err := p.ChainID()
	if err != nil {
		return storage.Key{}, err
	}
	return storage.NewKey(chainID, address), nil
}

// ToUint - converts loosely typed value to non-negative integer. Accepts numbers and
// numeric strings, rejects fractions, negatives and everything else.
func ToUint(value any) (uint64, error) {
	var (
		d   decimal.Decimal
		err error
	)
	switch typ := value.(type) {
	case json.Number:
		d, err = decimal.NewFromString(typ.String())
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(typ))
	case float64:
		d = decimal.NewFromFloat(typ)
	case float32:
		d = decimal.NewFromFloat32(typ)
	case int:
		d = decimal.NewFromInt(int64(typ))
	case int64:
		d = decimal.NewFromInt(typ)
	case uint64:
		return typ, nil
	default:
		return 0, errors.Wrapf(ErrInvalidNumber, "%v", value)
	}
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidNumber, "%v", value)
	}
	if !d.IsInteger() || d.IsNegative() {
		return 0, errors.Wrapf(ErrInvalidNumber, "%v", value)
	}
	b := d.BigInt()
	if !b.IsUint64() {
		return 0, errors.Wrapf(ErrInvalidNumber, "%v", value)
	}
	return b.Uint64(), nil
}

func truthy(value any) bool {
	switch typ := value.(type) {
	case nil:
		return false
	case string:
		return typ != ""
	case bool:
		return typ
	case json.Number:
		d, err := decimal.NewFromString(typ.String())
		if err != nil {
			return typ != ""
		}
		return !d.IsZero()
	case int:
		return typ != 0
	case int32:
		return typ != 0
	case int64:
		return typ != 0
	case uint:
		return typ != 0
	case uint32:
		return typ != 0
	case uint64:
		return typ != 0
	case float32:
		return typ != 0
	case float64:
		return typ != 0
	case decimal.Decimal:
		return !typ.IsZero()
	case []any:
		return len(typ) > 0
	case map[string]any:
		return len(typ) > 0
	default:
		return true
	}
}
