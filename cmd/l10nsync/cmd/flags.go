// Copyright © 2018 One Concern

package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/oneconcern/l10nsync/pkg/api"
	"github.com/oneconcern/l10nsync/pkg/dlogger"
	"github.com/oneconcern/l10nsync/pkg/model"
)

const (
	langFromFilename = "filename"
	langFromContent  = "content"
)

type syncFlagsT struct {
	rootPath   string
	token      string
	project    string
	branch     string
	extensions []string
	maxRetries int
	safeMode   bool
	silent     bool
	langFrom   string
	skip       string
	apiURL     string
	timeout    time.Duration
	logLevel   string

	// options set with --option key=value
	options map[string]string
	// options set in the config file, per task
	exportConfigOptions map[string]interface{}
	importConfigOptions map[string]interface{}
}

var syncFlags = syncFlagsT{}

func addLogLevelFlag(cmd *cobra.Command) string {
	logLevel := "loglevel"
	cmd.PersistentFlags().StringVar(&syncFlags.logLevel, logLevel, dlogger.LogLevelWarn, "The logging level. Levels by increasing order of verbosity: none, error, warn, info, debug")
	return logLevel
}

func addRootFlag(cmd *cobra.Command) string {
	root := "root"
	cmd.Flags().StringVar(&syncFlags.rootPath, root, model.DefaultRootPath, "The directory holding translation files")
	return root
}

func addTokenFlag(cmd *cobra.Command) string {
	token := "token"
	cmd.Flags().StringVar(&syncFlags.token, token, "", "The API token of the localization service. Prefer setting L10NSYNC_TOKEN")
	return token
}

func addProjectFlag(cmd *cobra.Command) string {
	project := "project"
	cmd.Flags().StringVar(&syncFlags.project, project, "", "The ID of the project on the localization service")
	return project
}

func addBranchFlag(cmd *cobra.Command) string {
	branch := "branch"
	cmd.Flags().StringVar(&syncFlags.branch, branch, "", "The branch of the project, if any")
	return branch
}

func addExtensionsFlag(cmd *cobra.Command) string {
	extensions := "extensions"
	cmd.Flags().StringSliceVar(&syncFlags.extensions, extensions, model.DefaultFileExtensions(), "The extensions of translation files")
	return extensions
}

func addMaxRetriesFlag(cmd *cobra.Command) string {
	maxRetries := "max-retries"
	cmd.Flags().IntVar(&syncFlags.maxRetries, maxRetries, model.DefaultMaxRetries, "How many times a rate limited call is retried")
	return maxRetries
}

func addSafeModeFlag(cmd *cobra.Command) string {
	safeMode := "safe-mode"
	cmd.Flags().BoolVar(&syncFlags.safeMode, safeMode, false, "Ask for confirmation before writing into a non-empty root directory")
	return safeMode
}

func addSilentFlag(cmd *cobra.Command) string {
	silent := "silent"
	cmd.Flags().BoolVar(&syncFlags.silent, silent, false, "Do not print completion messages")
	return silent
}

func addLangFromFlag(cmd *cobra.Command) string {
	langFrom := "lang-from"
	cmd.Flags().StringVar(&syncFlags.langFrom, langFrom, langFromFilename,
		`How the language of a file is inferred: "filename" (en.yml is "en") or "content" (the root key of the YAML document)`)
	return langFrom
}

func addSkipFlag(cmd *cobra.Command) string {
	skip := "skip"
	cmd.Flags().StringVar(&syncFlags.skip, skip, "", "A regular expression (RE2) matching paths of files which are not exported")
	return skip
}

func addOptionFlag(cmd *cobra.Command) string {
	option := "option"
	cmd.Flags().StringToStringVar(&syncFlags.options, option, nil,
		"Extra option sent to the localization service, as key=value. Values are parsed as YAML scalars. May be repeated")
	return option
}

func addAPIURLFlag(cmd *cobra.Command) string {
	apiURL := "api-url"
	cmd.Flags().StringVar(&syncFlags.apiURL, apiURL, api.DefaultBaseURL, "The base URL of the localization service API")
	return apiURL
}

func addTimeoutFlag(cmd *cobra.Command) string {
	timeout := "timeout"
	cmd.Flags().DurationVar(&syncFlags.timeout, timeout, api.DefaultTimeout, "The timeout of a single API call")
	return timeout
}

// addSyncFlags adds the flags shared by export and import
func addSyncFlags(cmd *cobra.Command) {
	addRootFlag(cmd)
	addTokenFlag(cmd)
	addProjectFlag(cmd)
	addBranchFlag(cmd)
	addExtensionsFlag(cmd)
	addMaxRetriesFlag(cmd)
	addSilentFlag(cmd)
	addOptionFlag(cmd)
	addAPIURLFlag(cmd)
	addTimeoutFlag(cmd)
}
