package main

import (
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/cheercast/internal/config"
	"github.com/nguyentantai21042004/cheercast/internal/model"
	"github.com/nguyentantai21042004/cheercast/internal/pipeline"
)

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Memo file, or a directory of memos for a weekly broadcast")
	cmd.Flags().StringP("text", "t", "", "Memo text given inline")
	cmd.Flags().StringP("style", "s", "", "Analysis style (analytical|comprehensive)")
	cmd.Flags().IntP("duration", "d", 0, "Target broadcast length in minutes (1-60)")
	cmd.MarkFlagsOneRequired("input", "text")
	cmd.MarkFlagsMutuallyExclusive("input", "text")
}

// addBgmLevelFlags registers the mixing levels; zero values mean "use config".
func addBgmLevelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("bgm-volume", 0, "BGM volume during intro and outro (0-1)")
	cmd.Flags().Float64("ducking", 0, "BGM volume under the voice (0-1)")
	cmd.Flags().Float64("fade-in", 0, "BGM fade-in seconds")
	cmd.Flags().Float64("fade-out", 0, "BGM fade-out seconds")
	cmd.Flags().Float64("intro", 0, "Seconds of BGM before the voice starts")
	cmd.Flags().Float64("outro", 0, "Seconds of BGM after the voice ends")
}

func sourceRequest(cmd *cobra.Command) pipeline.Request {
	input, _ := cmd.Flags().GetString("input")
	text, _ := cmd.Flags().GetString("text")
	style, _ := cmd.Flags().GetString("style")
	duration, _ := cmd.Flags().GetInt("duration")

	return pipeline.Request{
		SourcePath:      input,
		SourceText:      text,
		Style:           model.Style(style),
		DurationMinutes: duration,
	}
}

// bgmSpec merges explicitly set level flags over the configured defaults.
func bgmSpec(cmd *cobra.Command, path string, defaults config.BGMConfig) pipeline.BgmSpec {
	spec := pipeline.BgmSpec{
		Path:    path,
		Volume:  defaults.Volume,
		Ducking: defaults.Ducking,
		FadeIn:  defaults.FadeIn,
		FadeOut: defaults.FadeOut,
		Intro:   defaults.Intro,
		Outro:   defaults.Outro,
	}

	for name, dst := range map[string]*float64{
		"bgm-volume": &spec.Volume,
		"ducking":    &spec.Ducking,
		"fade-in":    &spec.FadeIn,
		"fade-out":   &spec.FadeOut,
		"intro":      &spec.Intro,
		"outro":      &spec.Outro,
	} {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetFloat64(name)
		}
	}
	return spec
}
