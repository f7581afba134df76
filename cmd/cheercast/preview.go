package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the generated script without synthesizing audio",
		Args:  cobra.NoArgs,
		RunE:  runPreview,
	}

	addSourceFlags(cmd)
	cmd.Flags().String("save", "", "Also save the script (.docx or .txt)")
	return cmd
}

func runPreview(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}

	req := sourceRequest(cmd)
	req.Preview = true
	req.TranscriptPath, _ = cmd.Flags().GetString("save")
	req.OnProgress = printProgress(cmd)

	res, err := a.pipeline.Run(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), res.Script.String())
	return nil
}
