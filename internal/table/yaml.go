package table

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

type yamlCodec struct{}

func (yamlCodec) Decode(data []byte) (*Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, invalidf("%v", err)
	}

	t := New()
	// An empty document is an empty table
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return t, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, invalidf("expected a YAML mapping at the top level")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, invalidf("non-scalar key at line %d", k.Line)
		}
		if v.Kind == yaml.AliasNode && v.Alias != nil {
			v = v.Alias
		}
		if v.Kind != yaml.ScalarNode {
			return nil, invalidf("nested value under key %q", k.Value)
		}
		if v.Tag == "!!null" {
			t.Set(k.Value, "")
			continue
		}
		t.Set(k.Value, v.Value)
	}

	return t, nil
}

func (yamlCodec) Encode(t *Table) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range t.keys {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.values[k]},
		)
	}
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
