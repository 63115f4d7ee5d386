package table

import (
	"bytes"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

type tomlCodec struct{}

func (tomlCodec) Decode(data []byte) (*Table, error) {
	values := map[string]any{}
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, invalidf("%v", err)
	}

	for k, v := range values {
		if _, ok := v.(string); !ok {
			return nil, invalidf("value of key %q is %T, not a string", k, v)
		}
	}

	order, err := tomlKeyOrder(data)
	if err != nil {
		return nil, invalidf("%v", err)
	}

	t := New()
	for _, k := range order {
		if v, ok := values[k]; ok {
			t.Set(k, v.(string))
		}
	}
	// Anything the order scan did not see still belongs to the table
	var rest []string
	for k := range values {
		if !t.Has(k) {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		t.Set(k, values[k].(string))
	}

	return t, nil
}

// tomlKeyOrder returns the top-level keys in document order
func tomlKeyOrder(data []byte) ([]string, error) {
	p := &unstable.Parser{}
	p.Reset(data)

	var keys []string
	for p.NextExpression() {
		expr := p.Expression()
		if expr.Kind != unstable.KeyValue {
			continue
		}
		it := expr.Key()
		var parts []string
		for it.Next() {
			parts = append(parts, string(it.Node().Data))
		}
		if len(parts) == 1 {
			keys = append(keys, parts[0])
		}
	}
	return keys, p.Error()
}

func (tomlCodec) Encode(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	for _, k := range t.keys {
		line, err := toml.Marshal(map[string]string{k: t.values[k]})
		if err != nil {
			return nil, err
		}
		buf.Write(line)
	}
	return buf.Bytes(), nil
}
