package cmd

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/l10nsync/pkg/core/status"
	"github.com/oneconcern/l10nsync/pkg/errors"
	"github.com/oneconcern/l10nsync/pkg/model"
)

func TestModelConfig(t *testing.T) {
	params := syncFlagsT{
		rootPath:   "/app/locales",
		token:      " tok ",
		project:    "123.abc",
		branch:     "develop",
		extensions: []string{".yml", ".json"},
		maxRetries: 2,
		safeMode:   true,
		silent:     true,
		langFrom:   langFromContent,
		skip:       `/vendor/`,
		options:    map[string]string{"replace_modified": "true", "indentation": "4sp"},
		exportConfigOptions: map[string]interface{}{
			"tags":        []interface{}{"mobile"},
			"indentation": "2sp",
		},
		importConfigOptions: map[string]interface{}{
			"export_empty_as": "skip",
			"indentation":     "2sp",
		},
	}

	cfg, err := params.modelConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/app/locales", cfg.RootPath)
	assert.Equal(t, "tok", cfg.APIToken)
	assert.Equal(t, "123.abc:develop", cfg.ProjectIdentifier())
	assert.Equal(t, []string{".yml", ".json"}, cfg.FileExtensions)
	assert.Equal(t, 2, cfg.MaxRetriesExport)
	assert.Equal(t, 2, cfg.MaxRetriesImport)
	assert.True(t, cfg.ImportSafeMode)
	assert.True(t, cfg.Silent)
	assert.True(t, cfg.ShouldSkip("/app/locales/vendor/en.yml"))
	assert.False(t, cfg.ShouldSkip("/app/locales/en.yml"))

	lang, err := cfg.InferLang([]byte("fr:\n  hello: monde\n"), "/app/locales/main.yml")
	require.NoError(t, err)
	assert.Equal(t, "fr", lang)

	assert.Equal(t, map[string]interface{}{
		"replace_modified": true,
		"indentation":      "4sp",
		"tags":             []interface{}{"mobile"},
	}, cfg.ExportOptions)
	assert.Equal(t, true, cfg.ImportOptions["replace_modified"])
	assert.Equal(t, "4sp", cfg.ImportOptions["indentation"])
	assert.Equal(t, "yaml", cfg.ImportOptions["format"])
	assert.Equal(t, "skip", cfg.ImportOptions["export_empty_as"])
	assert.NotContains(t, cfg.ImportOptions, "tags")
	assert.NotContains(t, cfg.ExportOptions, "export_empty_as")
}

func TestModelConfigOptionsPerTask(t *testing.T) {
	cfg, err := syncFlagsT{
		exportConfigOptions: map[string]interface{}{"replace_modified": true},
		importConfigOptions: map[string]interface{}{"format": "json"},
	}.modelConfig()
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"replace_modified": true}, cfg.ExportOptions)
	assert.NotContains(t, cfg.ImportOptions, "replace_modified")
	assert.Equal(t, "json", cfg.ImportOptions["format"])
	assert.NotContains(t, cfg.ExportOptions, "format")
}

func TestModelConfigDefaults(t *testing.T) {
	cfg, err := syncFlagsT{maxRetries: model.DefaultMaxRetries}.modelConfig()
	require.NoError(t, err)

	assert.Equal(t, model.DefaultRootPath, cfg.RootPath)
	assert.Equal(t, model.DefaultFileExtensions(), cfg.FileExtensions)
	assert.Equal(t, model.DefaultImportOptions(), cfg.ImportOptions)
	assert.Empty(t, cfg.ExportOptions)

	lang, err := cfg.InferLang(nil, "/locales/en.yml")
	require.NoError(t, err)
	assert.Equal(t, "en", lang)

	err = cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrConfiguration))
}

func TestModelConfigErrors(t *testing.T) {
	for _, toPin := range []struct {
		name   string
		params syncFlagsT
	}{
		{name: "lang inference", params: syncFlagsT{langFrom: "guess"}},
		{name: "skip expression", params: syncFlagsT{skip: "(unclosed"}},
		{name: "retries", params: syncFlagsT{maxRetries: -1}},
	} {
		fixture := toPin
		t.Run(fixture.name, func(t *testing.T) {
			_, err := fixture.params.modelConfig()
			require.Error(t, err)
			assert.True(t, errors.Is(err, status.ErrConfiguration))
		})
	}
}

func TestParseOptionValue(t *testing.T) {
	for _, toPin := range []struct {
		value    string
		expected interface{}
	}{
		{value: "true", expected: true},
		{value: "3", expected: 3},
		{value: "1.5", expected: 1.5},
		{value: "2sp", expected: "2sp"},
		{value: "", expected: ""},
		{value: "a: b", expected: "a: b"},
		{value: "[x, y]", expected: "[x, y]"},
		{value: "{unclosed", expected: "{unclosed"},
	} {
		fixture := toPin
		t.Run(fixture.value, func(t *testing.T) {
			assert.Equal(t, fixture.expected, parseOptionValue(fixture.value))
		})
	}
}

func TestSetSyncParams(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var params syncFlagsT
	flags.StringVar(&params.token, "token", "", "")
	flags.StringVar(&params.project, "project", "", "")
	flags.DurationVar(&params.timeout, "timeout", time.Minute, "")
	require.NoError(t, flags.Parse([]string{"--project", "from-flag"}))

	config := &CLIConfig{
		Token:         "from-config",
		Project:       "from-config",
		Retries:       3,
		LangFrom:      langFromContent,
		Timeout:       10 * time.Second,
		ExportOptions: map[string]interface{}{"replace_modified": true},
		ImportOptions: map[string]interface{}{"format": "json"},
	}
	config.setSyncParams(flags, &params)

	assert.Equal(t, "from-config", params.token)
	assert.Equal(t, "from-flag", params.project)
	assert.Equal(t, 3, params.maxRetries)
	assert.Equal(t, langFromContent, params.langFrom)
	assert.Equal(t, 10*time.Second, params.timeout)
	assert.Equal(t, map[string]interface{}{"replace_modified": true}, params.exportConfigOptions)
	assert.Equal(t, map[string]interface{}{"format": "json"}, params.importConfigOptions)

	var nilConfig *CLIConfig
	assert.NotPanics(t, func() { nilConfig.setSyncParams(flags, &params) })
}
