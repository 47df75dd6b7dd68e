// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oneconcern/l10nsync/pkg/core"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Download translation files",
	Long: `Download all translation files of a project and write them under the root directory.

The localization service builds a zip bundle, which is fetched from the location it returns
(https://, gs://, s3:// or a local path). Every entry is checked before any file is written:
a single malformed entry aborts the import and leaves the root directory untouched.

With --safe-mode, confirmation is asked before writing into a root directory which already holds files.
`,
	Example: `l10nsync import --project 123.abc --root ./config/locales --safe-mode --option export_empty_as=skip`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := commandContext()
		defer stop()

		cfg, err := syncFlags.modelConfig()
		if err != nil {
			wrapFatalln("invalid settings", err)
			return
		}
		logger, err := taskLogger("import")
		if err != nil {
			wrapFatalln("create logger", err)
			return
		}

		importer := core.NewImporter(cfg, newClient(syncFlags, logger), append(taskOptions(logger), core.Logger(logger))...)
		if _, err = importer.Import(ctx); err != nil {
			wrapFatalln("import", err)
			return
		}
	},
}

func init() {
	addSyncFlags(importCmd)
	addSafeModeFlag(importCmd)

	rootCmd.AddCommand(importCmd)
}
