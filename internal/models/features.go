package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Features is the canonical, ordered list of product feature lines.
//
// Catalog rows store features as an array, as an object of label/value pairs,
// as a single string, or not at all. Every shape decodes into a flat list;
// object pairs become "label: value" in document order.
//
//nolint:recvcheck // use pointer receiver to match bson.UnmarshalValue
type Features []string

func (f Features) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(f))
}

func (f *Features) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = Features{}
		return nil
	}

	switch data[0] {
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decode features array: %w", err)
		}
		out := make(Features, 0, len(raw))
		for _, r := range raw {
			if line := jsonScalar(r); line != "" {
				out = append(out, line)
			}
		}
		*f = out
		return nil
	case '{':
		out, err := orderedJSONPairs(data)
		if err != nil {
			return fmt.Errorf("decode features object: %w", err)
		}
		*f = out
		return nil
	default:
		line := jsonScalar(data)
		if line == "" {
			*f = Features{}
			return nil
		}
		*f = Features{line}
		return nil
	}
}

// orderedJSONPairs walks the object token by token to keep key order.
func orderedJSONPairs(data []byte) (Features, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	out := Features{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		out = append(out, pairLine(key, jsonScalar(value)))
	}
	return out, nil
}

func jsonScalar(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "null" {
		return ""
	}
	return trimmed
}

func pairLine(key, value string) string {
	key = strings.TrimSpace(key)
	switch {
	case key == "":
		return value
	case value == "":
		return key
	default:
		return key + ": " + value
	}
}

func (f *Features) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		*f = Features{}
		return nil
	case bson.TypeArray:
		values, err := rv.Array().Values()
		if err != nil {
			return fmt.Errorf("decode features array: %w", err)
		}
		out := make(Features, 0, len(values))
		for _, v := range values {
			if line := bsonScalar(v); line != "" {
				out = append(out, line)
			}
		}
		*f = out
		return nil
	case bson.TypeEmbeddedDocument:
		elems, err := rv.Document().Elements()
		if err != nil {
			return fmt.Errorf("decode features document: %w", err)
		}
		out := make(Features, 0, len(elems))
		for _, e := range elems {
			out = append(out, pairLine(e.Key(), bsonScalar(e.Value())))
		}
		*f = out
		return nil
	default:
		line := bsonScalar(rv)
		if line == "" {
			*f = Features{}
			return nil
		}
		*f = Features{line}
		return nil
	}
}

func bsonScalar(v bson.RawValue) string {
	if s, ok := v.StringValueOK(); ok {
		return strings.TrimSpace(s)
	}
	if v.Type == bson.TypeNull || v.Type == bson.TypeUndefined {
		return ""
	}
	return v.String()
}
