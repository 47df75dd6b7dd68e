package core

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// yaml tags a bundle entry may carry. Anything else (e.g. !ruby/object, !!python/object)
// is a type the remote side asks us to instantiate, and is rejected.
var safeYAMLTags = map[string]bool{
	"!!null":      true,
	"!!bool":      true,
	"!!int":       true,
	"!!float":     true,
	"!!str":       true,
	"!!timestamp": true,
	"!!binary":    true,
	"!!map":       true,
	"!!seq":       true,
	"!!merge":     true,
}

type entryDecoder func([]byte) ([]byte, error)

func decoderFor(name string) entryDecoder {
	switch strings.ToLower(path.Ext(name)) {
	case ".yml", ".yaml":
		return decodeYAML
	case ".json":
		return decodeJSON
	default:
		return passThrough
	}
}

// decodeEntry validates the content of a bundle entry and returns the content to be written
func decodeEntry(name string, content []byte) ([]byte, error) {
	return decoderFor(name)(content)
}

// decodeYAML parses all documents as plain data, then serializes them back
func decodeYAML(content []byte) ([]byte, error) {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	docs := make([]*yaml.Node, 0, 1)
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := checkYAMLNode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}
	if len(docs) == 0 {
		return content, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func checkYAMLNode(n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode, yaml.AliasNode:
	case yaml.MappingNode, yaml.SequenceNode, yaml.ScalarNode:
		if !safeYAMLTags[n.Tag] {
			return fmt.Errorf("line %d: unsupported yaml tag %q", n.Line, n.Tag)
		}
	default:
		return fmt.Errorf("line %d: unexpected yaml node", n.Line)
	}
	for _, child := range n.Content {
		if err := checkYAMLNode(child); err != nil {
			return err
		}
	}
	return nil
}

// decodeJSON checks that the content is well-formed JSON. The content is kept as is,
// to preserve the order of keys.
func decodeJSON(content []byte) ([]byte, error) {
	var v interface{}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(content, &v); err != nil {
		return nil, err
	}
	return content, nil
}

func passThrough(content []byte) ([]byte, error) {
	return content, nil
}
