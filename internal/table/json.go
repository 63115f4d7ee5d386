package table

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

type jsonCodec struct{}

func (jsonCodec) Decode(data []byte) (*Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, invalidf("expected a JSON object: %v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, invalidf("expected a JSON object, got %v", tok)
	}

	t := New()
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, invalidf("%v", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, invalidf("unexpected token %v", tok)
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, invalidf("%v", err)
		}
		switch v := tok.(type) {
		case string:
			t.Set(key, v)
		case nil:
			t.Set(key, "")
		case json.Delim:
			return nil, invalidf("nested value under key %q", key)
		default:
			return nil, invalidf("value of key %q is %T, not a string", key, v)
		}
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, invalidf("%v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, invalidf("trailing data after JSON object")
	}

	return t, nil
}

func (jsonCodec) Encode(t *Table) ([]byte, error) {
	if t.Len() == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, k := range t.keys {
		key, err := jsonString(k)
		if err != nil {
			return nil, err
		}
		value, err := jsonString(t.values[k])
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if i < len(t.keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// jsonString quotes s without HTML escaping so markup in translations
// stays readable.
func jsonString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
