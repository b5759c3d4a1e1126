package request

import (
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/dipdup-io/token-lists/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// errors
var (
	ErrUnknownNetwork   = errors.New("no valid network found")
	ErrUnknownOperation = errors.New("no valid operation label found")
	ErrValidation       = errors.New("validation failed")
)

// request value keys
const (
	FieldNetwork       = "network"
	FieldAddress       = "address"
	FieldSymbol        = "symbol"
	FieldChainID       = "chainId"
	FieldBlockExplorer = "blockExplorer"
	FieldLogoURI       = "logoURI"
	FieldPrImageURL    = "prImageUrl"
)

// DefaultFields - field headings of the request form
var DefaultFields = []string{"network", "symbol", "name", "url", "decimals", "address", "reason"}

// Config -
type Config struct {
	Fields     []string
	BaseURL    string
	ImagesPath string
}

// Request - parsed request
type Request struct {
	Operation storage.Operation
	Values    map[string]any
}

// Output - values handed over to the following workflow steps
type Output struct {
	Operation              storage.Operation `json:"operation"`
	IssueInfo              string            `json:"issueInfo"`
	NeedsImageOptimization bool              `json:"needsImageOptimization"`
}

// Parser -
type Parser struct {
	fields     []string
	patterns   []*regexp.Regexp
	baseURL    string
	imagesPath string
	validate   *validator.Validate
}

// NewParser -
func NewParser(cfg Config) *Parser {
	var (
		fields     = DefaultFields
		baseURL    = "https://raw.githubusercontent.com/cowprotocol/token-lists"
		imagesPath = "src/public/images"
	)
	if len(cfg.Fields) > 0 {
		fields = cfg.Fields
	}
	if cfg.BaseURL != "" {
		baseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	if cfg.ImagesPath != "" {
		imagesPath = strings.Trim(cfg.ImagesPath, "/")
	}

	patterns := make([]*regexp.Regexp, len(fields))
	for i := range fields {
		patterns[i] = regexp.MustCompile(`(?is)` + regexp.QuoteMeta(fields[i]) + `\s+(.*?)(\s+###|$)`)
	}

	return &Parser{
		fields:     fields,
		patterns:   patterns,
		baseURL:    baseURL,
		imagesPath: imagesPath,
		validate:   newValidator(),
	}
}

// Parse - builds request from the form body and labels
func (p *Parser) Parse(body string, labels []string) (Request, error) {
	values := p.Extract(body)
	if address, ok := values[FieldAddress].(string); ok {
		values[FieldAddress] = storage.NormalizeAddress(address)
	}

	if err := applyNetwork(values); err != nil {
		return Request{}, err
	}
	p.imageURLs(values)

	op, err := FindOperation(labels)
	if err != nil {
		return Request{}, err
	}
	if err := p.Validate(op, values); err != nil {
		return Request{}, err
	}

	return Request{
		Operation: op,
		Values:    values,
	}, nil
}

// Extract - finds `<field> <value>` sections of the body. Absent fields are skipped.
func (p *Parser) Extract(body string) map[string]any {
	values := make(map[string]any)
	for i := range p.fields {
		match := p.patterns[i].FindStringSubmatch(body)
		if match == nil {
			continue
		}
		values[strings.ToLower(p.fields[i])] = strings.TrimSpace(match[1])
	}
	return values
}

// FindOperation - first label which names an operation
func FindOperation(labels []string) (storage.Operation, error) {
	idx := slices.IndexFunc(labels, func(label string) bool {
		_, ok := forms[storage.Operation(label)]
		return ok
	})
	if idx < 0 {
		return "", ErrUnknownOperation
	}
	return storage.Operation(labels[idx]), nil
}

func applyNetwork(values map[string]any) error {
	name, _ := values[FieldNetwork].(string)
	network, ok := Networks[name]
	if !ok {
		return errors.Wrap(ErrUnknownNetwork, name)
	}
	values[FieldChainID] = network.ChainID
	values[FieldBlockExplorer] = network.BlockExplorer
	return nil
}

func (p *Parser) imageURLs(values map[string]any) {
	chainID, ok := values[FieldChainID].(uint64)
	if !ok {
		return
	}
	address, _ := values[FieldAddress].(string)
	if chainID == 0 || address == "" {
		return
	}
	values[FieldPrImageURL] = fmt.Sprintf("%s/{0}/%d_%s/%s/%d/%s/%s", p.baseURL, chainID, address, p.imagesPath, chainID, address, storage.LogoFileName)
	values[FieldLogoURI] = fmt.Sprintf("%s/main/%s/%d/%s/%s", p.baseURL, p.imagesPath, chainID, address, storage.LogoFileName)
}

// Output -
func (r Request) Output() (Output, error) {
	info, err := json.Marshal(r.Values)
	if err != nil {
		return Output{}, err
	}
	return Output{
		Operation:              r.Operation,
		IssueInfo:              string(info),
		NeedsImageOptimization: r.Operation.NeedsImageOptimization(),
	}, nil
}

// WriteGithubOutput - `key=value` lines in the format of $GITHUB_OUTPUT
func (o Output) WriteGithubOutput(w io.Writer) error {
	_, err := fmt.Fprintf(w, "operation=%s\nissueInfo=%s\nneedsImageOptimization=%t\n", o.Operation, o.IssueInfo, o.NeedsImageOptimization)
	return err
}
