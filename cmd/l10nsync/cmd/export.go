// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oneconcern/l10nsync/pkg/core"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Upload translation files",
	Long: `Upload all translation files found under the root directory to the localization service.

Files are uploaded one at a time, in a stable order. The language of each file is inferred
from its name (en.yml is "en") or, with --lang-from=content, from the root key of the document.

Rate limited uploads are retried with an exponential backoff, up to --max-retries times.
The export stops at the first failure: files uploaded so far are not rolled back.
`,
	Example: `l10nsync export --project 123.abc --root ./config/locales --extensions .yml,.yaml --option replace_modified=true`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := commandContext()
		defer stop()

		cfg, err := syncFlags.modelConfig()
		if err != nil {
			wrapFatalln("invalid settings", err)
			return
		}
		logger, err := taskLogger("export")
		if err != nil {
			wrapFatalln("create logger", err)
			return
		}

		exporter := core.NewExporter(cfg, newClient(syncFlags, logger), append(taskOptions(logger), core.Logger(logger))...)
		processes, err := exporter.Export(ctx)
		if err != nil {
			wrapFatalln("export", err)
			return
		}
		for _, process := range processes {
			logger.Debug("upload process", zap.String("id", process.ID), zap.String("status", process.Status))
		}
	},
}

func init() {
	addSyncFlags(exportCmd)
	addLangFromFlag(exportCmd)
	addSkipFlag(exportCmd)

	rootCmd.AddCommand(exportCmd)
}
