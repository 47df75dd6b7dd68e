package core

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/l10nsync/pkg/core/status"
	"github.com/oneconcern/l10nsync/pkg/errors"
	"github.com/oneconcern/l10nsync/pkg/model"
)

func TestBuildUploadOptions(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/locales/en.yml":        "hello: world",
		"/locales/nested/ru.yml": "\n\n  ru:\n    hello: mir\n\t\n",
	})

	for _, toPin := range []struct {
		name     string
		file     model.CandidateFile
		extra    map[string]interface{}
		expected model.UploadOptions
	}{
		{
			name: "simple file",
			file: model.CandidateFile{Path: "/locales/en.yml", RelativePath: "en.yml"},
			expected: model.UploadOptions{
				"data":     base64.StdEncoding.EncodeToString([]byte("hello: world")),
				"filename": "en.yml",
				"lang_iso": "en",
			},
		},
		{
			name: "trimmed content in nested file",
			file: model.CandidateFile{Path: "/locales/nested/ru.yml", RelativePath: "nested/ru.yml"},
			expected: model.UploadOptions{
				"data":     base64.StdEncoding.EncodeToString([]byte("ru:\n    hello: mir")),
				"filename": "nested/ru.yml",
				"lang_iso": "ru",
			},
		},
		{
			name: "extra options",
			file: model.CandidateFile{Path: "/locales/en.yml", RelativePath: "en.yml"},
			extra: map[string]interface{}{
				"replace_modified": true,
				"tags":             []string{"mobile"},
				"data":             "overridden",
				"filename":         "",
				"lang_iso":         "en_US",
			},
			expected: model.UploadOptions{
				"data":             base64.StdEncoding.EncodeToString([]byte("hello: world")),
				"filename":         "en.yml",
				"lang_iso":         "en_US",
				"replace_modified": true,
				"tags":             []string{"mobile"},
			},
		},
	} {
		fixture := toPin
		t.Run(fixture.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.ExportOptions = fixture.extra

			opts, err := BuildUploadOptions(fs, cfg, fixture.file)
			require.NoError(t, err)
			assert.Equal(t, fixture.expected, opts)
		})
	}
}

func TestBuildUploadOptionsFromContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/locales/main.yml": "fr:\n  hello: monde\n",
	})
	cfg := testConfig()
	cfg.LangInferrer = model.YAMLRootKeyInferrer

	opts, err := BuildUploadOptions(fs, cfg, model.CandidateFile{Path: "/locales/main.yml", RelativePath: "main.yml"})
	require.NoError(t, err)
	assert.Equal(t, "fr", opts.LangISO())
	assert.Equal(t, "main.yml", opts.Filename())
}

func TestBuildUploadOptionsErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/locales/en.yml": "hello: world",
	})
	file := model.CandidateFile{Path: "/locales/en.yml", RelativePath: "en.yml"}

	t.Run("missing file", func(t *testing.T) {
		_, err := BuildUploadOptions(fs, testConfig(), model.CandidateFile{Path: "/locales/missing.yml", RelativePath: "missing.yml"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, status.ErrFileRead))
		assert.Contains(t, err.Error(), "/locales/missing.yml")
	})

	t.Run("inference failure", func(t *testing.T) {
		cfg := testConfig()
		cfg.LangInferrer = model.LangInferrerFunc(func([]byte, string) (string, error) {
			return "", fmt.Errorf("no clue")
		})
		_, err := BuildUploadOptions(fs, cfg, file)
		require.Error(t, err)
		assert.True(t, errors.Is(err, status.ErrLangInference))
		assert.Contains(t, err.Error(), "/locales/en.yml")
		assert.Contains(t, err.Error(), "no clue")
	})

	t.Run("empty language", func(t *testing.T) {
		cfg := testConfig()
		cfg.LangInferrer = model.LangInferrerFunc(func([]byte, string) (string, error) {
			return " ", nil
		})
		_, err := BuildUploadOptions(fs, cfg, file)
		require.Error(t, err)
		assert.True(t, errors.Is(err, status.ErrLangInference))
	})
}
