package storage

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ErrNotObject -
var ErrNotObject = errors.New("JSON object expected")

// object - key order and unmodelled values of a decoded JSON object. Keys are written
// back in their original position, new keys go to the end.
type object struct {
	keys  []string
	extra map[string]json.RawMessage
}

// field - modelled value of an object
type field struct {
	key   string
	value any
}

func readObject(data []byte, known ...string) (object, error) {
	if !gjson.ValidBytes(data) {
		return object{}, errors.New("invalid JSON")
	}
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return object{}, ErrNotObject
	}

	obj := object{
		keys:  make([]string, 0),
		extra: make(map[string]json.RawMessage),
	}
	seen := make(map[string]struct{})
	var err error
	result.ForEach(func(key, value gjson.Result) bool {
		if _, ok := seen[key.Str]; ok {
			return true
		}
		seen[key.Str] = struct{}{}
		obj.keys = append(obj.keys, key.Str)

		for i := range known {
			if known[i] == key.Str {
				return true
			}
		}

		var buf bytes.Buffer
		if err = json.Compact(&buf, []byte(value.Raw)); err != nil {
			return false
		}
		obj.extra[key.Str] = json.RawMessage(buf.Bytes())
		return true
	})
	if err != nil {
		return object{}, err
	}
	return obj, nil
}

func (obj object) write(fields ...field) ([]byte, error) {
	values := make(map[string]any, len(fields))
	for i := range fields {
		values[fields[i].key] = fields[i].value
	}

	var (
		buf     bytes.Buffer
		written = make(map[string]struct{}, len(obj.keys)+len(fields))
	)
	buf.WriteByte('{')

	appendField := func(key string, raw []byte) error {
		if len(written) > 0 {
			buf.WriteByte(',')
		}
		written[key] = struct{}{}
		name, err := json.MarshalNoEscape(key)
		if err != nil {
			return err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(raw)
		return nil
	}

	for _, key := range obj.keys {
		if _, ok := written[key]; ok {
			continue
		}
		var raw []byte
		if value, ok := values[key]; ok {
			data, err := json.MarshalNoEscape(value)
			if err != nil {
				return nil, err
			}
			raw = data
		} else if data, ok := obj.extra[key]; ok {
			raw = data
		} else {
			continue
		}
		if err := appendField(key, raw); err != nil {
			return nil, err
		}
	}

	for i := range fields {
		if _, ok := written[fields[i].key]; ok {
			continue
		}
		data, err := json.MarshalNoEscape(fields[i].value)
		if err != nil {
			return nil, err
		}
		if err := appendField(fields[i].key, data); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
