package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileSkipper decides whether a local file is excluded from export
type FileSkipper interface {
	Skip(path string) bool
}

// SkipFunc adapts a plain function to a FileSkipper
type SkipFunc func(string) bool

// Skip the path when the function says so
func (f SkipFunc) Skip(path string) bool { return f(path) }

// NeverSkip exports every file
var NeverSkip FileSkipper = SkipFunc(func(string) bool { return false })

// SkipMatching skips every path matched by the regular expression
func SkipMatching(re *regexp.Regexp) FileSkipper {
	return SkipFunc(func(path string) bool {
		return re.MatchString(filepath.ToSlash(path))
	})
}

// LangInferrer figures out the language code of a translation file,
// from its raw content or its path.
type LangInferrer interface {
	InferLang(content []byte, path string) (string, error)
}

// LangInferrerFunc adapts a plain function to a LangInferrer
type LangInferrerFunc func([]byte, string) (string, error)

// InferLang calls the function
func (f LangInferrerFunc) InferLang(content []byte, path string) (string, error) {
	return f(content, path)
}

// FilenameLangInferrer uses the base name of the file, without extension: "locales/en.yml" is "en"
var FilenameLangInferrer LangInferrer = LangInferrerFunc(func(_ []byte, path string) (string, error) {
	base := filepath.Base(filepath.FromSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base)), nil
})

// YAMLRootKeyInferrer uses the first root key of a YAML document, as in:
//
//	en:
//	  hello: world
var YAMLRootKeyInferrer LangInferrer = LangInferrerFunc(func(content []byte, path string) (string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return "", fmt.Errorf("%s is empty", path)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode || len(root.Content) < 2 {
		return "", fmt.Errorf("%s has no root key", path)
	}
	return root.Content[0].Value, nil
})
