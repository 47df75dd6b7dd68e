// Copyright © 2018 One Concern

package model

import (
	"path/filepath"
	"strings"

	"github.com/oneconcern/l10nsync/pkg/core/status"
)

const (
	// DefaultRootPath is where translation files are looked for when no root is configured
	DefaultRootPath = "./locales"

	// DefaultMaxRetries is the default number of retries after a rate limited call
	DefaultMaxRetries = 5
)

// DefaultFileExtensions lists the file extensions exported and imported by default
func DefaultFileExtensions() []string {
	return []string{".yml"}
}

// DefaultImportOptions are sent along with every download request, unless overridden
func DefaultImportOptions() map[string]interface{} {
	return map[string]interface{}{
		"format":             "yaml",
		"placeholder_format": "icu",
		"yaml_include_root":  true,
		"original_filenames": true,
		"directory_prefix":   "",
		"indentation":        "2sp",
	}
}

// Config holds the settings of a single export or import task.
//
// A Config is built once and passed by value: core components never modify it.
// Use the With* methods to derive a modified copy.
type Config struct {
	RootPath  string `json:"root" yaml:"root"`
	APIToken  string `json:"-" yaml:"-"`
	ProjectID string `json:"project" yaml:"project"`
	Branch    string `json:"branch,omitempty" yaml:"branch,omitempty"`

	MaxRetriesExport int  `json:"maxRetriesExport" yaml:"maxRetriesExport"`
	MaxRetriesImport int  `json:"maxRetriesImport" yaml:"maxRetriesImport"`
	ImportSafeMode   bool `json:"importSafeMode" yaml:"importSafeMode"`
	Silent           bool `json:"silent" yaml:"silent"`

	// FileExtensions lists accepted extensions, with their leading dot (e.g. ".yml")
	FileExtensions []string `json:"extensions" yaml:"extensions"`

	Skipper      FileSkipper  `json:"-" yaml:"-"`
	LangInferrer LangInferrer `json:"-" yaml:"-"`

	// ExportOptions are merged into the options of every uploaded file
	ExportOptions map[string]interface{} `json:"exportOptions,omitempty" yaml:"exportOptions,omitempty"`
	// ImportOptions are sent with the download request
	ImportOptions map[string]interface{} `json:"importOptions,omitempty" yaml:"importOptions,omitempty"`
}

// DefaultConfig returns a Config with all defaults set, but no credentials
func DefaultConfig() Config {
	return Config{
		RootPath:         DefaultRootPath,
		MaxRetriesExport: DefaultMaxRetries,
		MaxRetriesImport: DefaultMaxRetries,
		FileExtensions:   DefaultFileExtensions(),
		Skipper:          NeverSkip,
		LangInferrer:     FilenameLangInferrer,
		ExportOptions:    map[string]interface{}{},
		ImportOptions:    DefaultImportOptions(),
	}
}

// Validate checks the settings required before talking to the remote service
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIToken) == "" {
		return status.ErrConfiguration.WithContext("API token is not set")
	}
	if strings.TrimSpace(c.ProjectID) == "" {
		return status.ErrConfiguration.WithContext("project ID is not set")
	}
	return nil
}

// ProjectIdentifier is the project id, suffixed with the branch name when a branch is configured
func (c Config) ProjectIdentifier() string {
	if c.Branch == "" {
		return c.ProjectID
	}
	return c.ProjectID + ":" + c.Branch
}

// AcceptsExtension tells if the extension of path is one of the configured file extensions.
// The comparison is case insensitive.
func (c Config) AcceptsExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, accepted := range c.FileExtensions {
		accepted = strings.ToLower(accepted)
		if !strings.HasPrefix(accepted, ".") {
			accepted = "." + accepted
		}
		if ext == accepted {
			return true
		}
	}
	return false
}

// ShouldSkip asks the configured skipper whether path is excluded from export
func (c Config) ShouldSkip(path string) bool {
	if c.Skipper == nil {
		return false
	}
	return c.Skipper.Skip(path)
}

// InferLang runs the configured language inferrer, falling back on the file name
func (c Config) InferLang(content []byte, path string) (string, error) {
	if c.LangInferrer == nil {
		return FilenameLangInferrer.InferLang(content, path)
	}
	return c.LangInferrer.InferLang(content, path)
}

// WithRootPath returns a copy of the config with another root path
func (c Config) WithRootPath(root string) Config {
	c.RootPath = root
	return c
}

// WithCredentials returns a copy of the config with another token and project
func (c Config) WithCredentials(token, projectID string) Config {
	c.APIToken = token
	c.ProjectID = projectID
	return c
}
