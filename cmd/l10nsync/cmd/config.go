package cmd

import (
	"regexp"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/oneconcern/l10nsync/pkg/api"
	"github.com/oneconcern/l10nsync/pkg/core/status"
	"github.com/oneconcern/l10nsync/pkg/dlogger"
	"github.com/oneconcern/l10nsync/pkg/model"
)

const (
	envConfig = "L10NSYNC_CONFIG"
	envPrefix = "L10NSYNC"
)

// CLIConfig describes the CLI configuration.
//
// Every setting may be found in the config file or in the environment. Flags win.
type CLIConfig struct {
	// bug in viper? Need to keep names of fields the same as the serialized names..
	Root       string        `json:"root" yaml:"root"`
	Token      string        `json:"token" yaml:"token"`
	Project    string        `json:"project" yaml:"project"`
	Branch     string        `json:"branch" yaml:"branch"`
	Extensions []string      `json:"extensions" yaml:"extensions"`
	Retries    int           `json:"retries" yaml:"retries"`
	SafeMode   bool          `json:"safemode" yaml:"safemode"`
	Silent     bool          `json:"silent" yaml:"silent"`
	LangFrom   string        `json:"langfrom" yaml:"langfrom"`
	Skip       string        `json:"skip" yaml:"skip"`
	APIURL     string        `json:"apiurl" yaml:"apiurl"`
	Timeout    time.Duration `json:"timeout" yaml:"timeout"`
	LogLevel   string        `json:"loglevel" yaml:"loglevel"`
	Credential string        `json:"credential" yaml:"credential"` // Credentials to use for GCS bundle locations

	// Extra options sent with uploads (export) and with the bundle request (import)
	ExportOptions map[string]interface{} `json:"exportoptions" yaml:"exportoptions"`
	ImportOptions map[string]interface{} `json:"importoptions" yaml:"importoptions"`
}

func setConfigDefaults() {
	viper.SetDefault("root", model.DefaultRootPath)
	viper.SetDefault("token", "")
	viper.SetDefault("project", "")
	viper.SetDefault("branch", "")
	viper.SetDefault("extensions", model.DefaultFileExtensions())
	viper.SetDefault("retries", model.DefaultMaxRetries)
	viper.SetDefault("safemode", false)
	viper.SetDefault("silent", false)
	viper.SetDefault("langfrom", langFromFilename)
	viper.SetDefault("skip", "")
	viper.SetDefault("apiurl", api.DefaultBaseURL)
	viper.SetDefault("timeout", api.DefaultTimeout)
	viper.SetDefault("loglevel", dlogger.LogLevelWarn)
	viper.SetDefault("credential", "")
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// setSyncParams fills in all flags not explicitly set on the command line
func (c *CLIConfig) setSyncParams(flags *pflag.FlagSet, params *syncFlagsT) {
	if c == nil {
		return
	}
	unset := func(name string) bool {
		return !flags.Changed(name)
	}
	if unset("root") && c.Root != "" {
		params.rootPath = c.Root
	}
	if unset("token") {
		params.token = c.Token
	}
	if unset("project") {
		params.project = c.Project
	}
	if unset("branch") {
		params.branch = c.Branch
	}
	if unset("extensions") && len(c.Extensions) > 0 {
		params.extensions = c.Extensions
	}
	if unset("max-retries") {
		params.maxRetries = c.Retries
	}
	if unset("safe-mode") {
		params.safeMode = c.SafeMode
	}
	if unset("silent") {
		params.silent = c.Silent
	}
	if unset("lang-from") && c.LangFrom != "" {
		params.langFrom = c.LangFrom
	}
	if unset("skip") {
		params.skip = c.Skip
	}
	if unset("api-url") && c.APIURL != "" {
		params.apiURL = c.APIURL
	}
	if unset("timeout") && c.Timeout > 0 {
		params.timeout = c.Timeout
	}
	if unset("loglevel") && c.LogLevel != "" {
		params.logLevel = c.LogLevel
	}
	params.exportConfigOptions = c.ExportOptions
	params.importConfigOptions = c.ImportOptions
}

// modelConfig builds the settings of a sync task
func (p syncFlagsT) modelConfig() (model.Config, error) {
	cfg := model.DefaultConfig()
	if p.rootPath != "" {
		cfg.RootPath = p.rootPath
	}
	cfg = cfg.WithCredentials(strings.TrimSpace(p.token), strings.TrimSpace(p.project))
	cfg.Branch = p.branch
	if len(p.extensions) > 0 {
		cfg.FileExtensions = p.extensions
	}
	if p.maxRetries < 0 {
		return model.Config{}, status.ErrConfiguration.WithContext("max retries must not be negative, got %d", p.maxRetries)
	}
	cfg.MaxRetriesExport = p.maxRetries
	cfg.MaxRetriesImport = p.maxRetries
	cfg.ImportSafeMode = p.safeMode
	cfg.Silent = p.silent

	switch p.langFrom {
	case "", langFromFilename:
		cfg.LangInferrer = model.FilenameLangInferrer
	case langFromContent:
		cfg.LangInferrer = model.YAMLRootKeyInferrer
	default:
		return model.Config{}, status.ErrConfiguration.WithContext("unknown language inference %q", p.langFrom)
	}

	if p.skip != "" {
		re, err := regexp.Compile(p.skip)
		if err != nil {
			return model.Config{}, status.ErrConfiguration.Wrap(err).WithContext("skip expression %q", p.skip)
		}
		cfg.Skipper = model.SkipMatching(re)
	}

	p.mergeOptions(cfg.ExportOptions, p.exportConfigOptions)
	p.mergeOptions(cfg.ImportOptions, p.importConfigOptions)
	return cfg, nil
}

// mergeOptions layers options from the config file, then from the command line, over defaults
func (p syncFlagsT) mergeOptions(dest, fromConfig map[string]interface{}) {
	for k, v := range fromConfig {
		dest[k] = v
	}
	for k, v := range p.options {
		dest[k] = parseOptionValue(v)
	}
}

// parseOptionValue reads a value as a YAML scalar, so that "true" or "2" are not sent as strings
func parseOptionValue(value string) interface{} {
	var v interface{}
	if err := yaml.Unmarshal([]byte(value), &v); err != nil || v == nil {
		return value
	}
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return value
	default:
		return v
	}
}
