// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "l10nsync",
	Short: "l10nsync keeps translation files in sync with a remote localization service",
	Long: `l10nsync keeps local translation files in sync with a remote localization service.

"l10nsync export" uploads all translation files found under a root directory.
"l10nsync import" downloads all translation files of a project and writes them under that directory.

Settings may be passed as flags, as environment variables prefixed with L10NSYNC_ (e.g. L10NSYNC_TOKEN),
or in a l10nsync.yaml config file.
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.setSyncParams(cmd.Flags(), &syncFlags)
	},
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addLogLevelFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigDefaults()
	if os.Getenv(envConfig) != "" {
		viper.SetConfigFile(os.Getenv(envConfig))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.l10nsync")
		viper.AddConfigPath("/etc/l10nsync")
		viper.SetConfigName("l10nsync")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		infoLogger.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		wrapFatalln("read configuration", err)
		return
	}
	if config.Credential != "" {
		_ = os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", config.Credential)
	}
}
