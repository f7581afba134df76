package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ProcessFile handles one memo dropped into the inbox: the broadcast and
// a transcript land in the output folder, the memo moves to archived.
func (p *implPipeline) ProcessFile(ctx context.Context, path string) error {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	req := Request{
		SourcePath:     path,
		OutputPath:     filepath.Join(p.cfg.Paths.Output, name+".mp3"),
		TranscriptPath: filepath.Join(p.cfg.Paths.Output, name+".docx"),
	}
	if p.cfg.BGM.Path != "" {
		req.Bgm = &BgmSpec{
			Path:    p.cfg.BGM.Path,
			Volume:  p.cfg.BGM.Volume,
			Ducking: p.cfg.BGM.Ducking,
			FadeIn:  p.cfg.BGM.FadeIn,
			FadeOut: p.cfg.BGM.FadeOut,
			Intro:   p.cfg.BGM.Intro,
			Outro:   p.cfg.BGM.Outro,
		}
	}

	if _, err := p.Run(ctx, req); err != nil {
		return fmt.Errorf("process %s: %w", filepath.Base(path), err)
	}

	if err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move memo to archived folder: %v", err)
	}
	return nil
}

// moveToArchived moves a processed memo out of the inbox
func (p *implPipeline) moveToArchived(ctx context.Context, path string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(path))
	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", path, destPath)

	if err := os.Rename(path, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
