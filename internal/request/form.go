package request

import (
	"reflect"
	"strings"

	"github.com/dipdup-io/token-lists/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// AddImageForm - fields of the `addImage` request
type AddImageForm struct {
	Network string `json:"network" validate:"required"`
	URL     string `json:"url" validate:"required"`
	Address string `json:"address" validate:"required"`
	Symbol  string `json:"symbol" validate:"excludesall= "`
}

// AddTokenForm - fields of the `addToken` request
type AddTokenForm struct {
	Network  string `json:"network" validate:"required"`
	Symbol   string `json:"symbol" validate:"required,excludesall= "`
	Name     string `json:"name" validate:"required"`
	URL      string `json:"url" validate:"required"`
	Decimals string `json:"decimals" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Reason   string `json:"reason" validate:"required"`
}

// RemoveTokenForm - fields of the `removeToken` request
type RemoveTokenForm struct {
	Network string `json:"network" validate:"required"`
	Reason  string `json:"reason" validate:"required"`
	Address string `json:"address" validate:"required"`
	Symbol  string `json:"symbol" validate:"excludesall= "`
}

var forms = map[storage.Operation]func() any{
	storage.OperationAddImage:    func() any { return new(AddImageForm) },
	storage.OperationAddToken:    func() any { return new(AddTokenForm) },
	storage.OperationRemoveToken: func() any { return new(RemoveTokenForm) },
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// Validate - checks the request values against the form of the operation
func (p *Parser) Validate(op storage.Operation, values map[string]any) error {
	newForm, ok := forms[op]
	if !ok {
		return errors.Wrap(ErrUnknownOperation, string(op))
	}

	form := newForm()
	if err := decodeForm(values, form); err != nil {
		return errors.Wrap(ErrValidation, err.Error())
	}

	err := p.validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	var (
		missing = make([]string, 0)
		spaces  bool
	)
	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			missing = append(missing, fe.Field())
		case "excludesall":
			spaces = true
		default:
			return errors.Wrapf(ErrValidation, "%s: %s", fe.Field(), fe.Tag())
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrValidation, "missing required fields for %s: %s", op, strings.Join(missing, ", "))
	}
	if spaces {
		return errors.Wrap(ErrValidation, "symbol cannot contain spaces")
	}
	return nil
}

// decodeForm - keeps only string values, the rest are filled by the parser itself
func decodeForm(values map[string]any, form any) error {
	text := make(map[string]string, len(values))
	for key, value := range values {
		if s, ok := value.(string); ok {
			text[key] = s
		}
	}
	data, err := json.Marshal(text)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, form)
}
