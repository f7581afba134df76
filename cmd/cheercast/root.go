package main

import (
	"github.com/spf13/cobra"
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cheercast",
		Short:         "Turn your daily memo into a two-host news broadcast",
		Long:          `CheerCast reads a free-text activity memo, writes a two-speaker news script with Gemini, voices it and mixes the result into an MP3.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)
	rootCmd.AddCommand(
		NewGenerateCmd(),
		NewPreviewCmd(),
		NewAddBgmCmd(),
		NewWatchCmd(),
	)

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "config.yaml", "Path to the YAML config file")
	cmd.PersistentFlags().String("env-file", ".env", "Optional dotenv file with GEMINI_API_KEY")
	cmd.PersistentFlags().String("log-level", "", "Override logging.level (debug|info|warn|error)")
}
