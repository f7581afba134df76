package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/cheercast/internal/pipeline"
)

func NewAddBgmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-bgm <audio>",
		Short: "Mix background music into an existing broadcast",
		Long:  `Mix background music under an exported broadcast. Without --output the input file is replaced.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runAddBgm,
	}

	addBgmLevelFlags(cmd)
	cmd.Flags().StringP("bgm", "b", "", "Background music file")
	cmd.Flags().StringP("output", "o", "", "Output path (default: replace input)")
	_ = cmd.MarkFlagRequired("bgm")
	return cmd
}

func runAddBgm(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("bgm")
	output, _ := cmd.Flags().GetString("output")

	out, err := a.pipeline.AddBackgroundMusic(cmd.Context(), pipeline.BgmRequest{
		AudioPath:  args[0],
		OutputPath: output,
		Bgm:        bgmSpec(cmd, path, a.cfg.BGM),
		OnProgress: printProgress(cmd),
	})
	if err != nil {
		return fmt.Errorf("add-bgm: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
