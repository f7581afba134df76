package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a broadcast MP3 from a memo",
		Long:  `Parse the memo, write the script, synthesize both hosts and export a loudness-normalized MP3, optionally with background music.`,
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}

	addSourceFlags(cmd)
	addBgmLevelFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Output MP3 path")
	cmd.Flags().Float64("speed", 0, "Speaking speed multiplier")
	cmd.Flags().String("bgm", "", "Background music file")
	cmd.Flags().String("transcript", "", "Also save the script (.docx or .txt)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}

	req := sourceRequest(cmd)
	req.OutputPath, _ = cmd.Flags().GetString("output")
	req.Speed, _ = cmd.Flags().GetFloat64("speed")
	req.TranscriptPath, _ = cmd.Flags().GetString("transcript")
	req.OnProgress = printProgress(cmd)

	if path, _ := cmd.Flags().GetString("bgm"); path != "" {
		spec := bgmSpec(cmd, path, a.cfg.BGM)
		req.Bgm = &spec
	}

	res, err := a.pipeline.Run(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s (%.1fs)\n", res.Script.Title, res.OutputPath, res.DurationSeconds)
	return nil
}
