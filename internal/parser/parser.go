package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

var supportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".json": true,
	".csv":  true,
}

// IsMemoFile reports whether path has a supported memo extension.
func IsMemoFile(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

func (p *implParser) Parse(ctx context.Context, data []byte, sourceHint string) (*model.ParsedMemo, error) {
	content, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", model.ErrInput, displayName(sourceHint), err)
	}

	memo := &model.ParsedMemo{
		Date:       p.extractDate(content, sourceHint),
		Content:    content,
		Activities: ExtractActivities(content),
		Highlights: ExtractHighlights(content),
	}

	p.logger.Debug(ctx, "Parsed memo %s: date=%s activities=%d highlights=%d",
		displayName(sourceHint), memo.Date.Format("2006-01-02"), len(memo.Activities), len(memo.Highlights))

	return memo, nil
}

func (p *implParser) ParseFile(ctx context.Context, path string) (*model.ParsedMemo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read memo: %w", model.ErrInput, err)
	}
	return p.Parse(ctx, data, path)
}

func (p *implParser) ParseDir(ctx context.Context, dir string) (*model.ParsedMemo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read memo dir: %w", model.ErrInput, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !IsMemoFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no memo files found in %s", model.ErrInput, dir)
	}

	memos := make([]*model.ParsedMemo, 0, len(files))
	for _, f := range files {
		memo, err := p.ParseFile(ctx, f)
		if err != nil {
			return nil, err
		}
		memos = append(memos, memo)
	}

	p.logger.Info(ctx, "Merged %d memo files from %s", len(memos), dir)
	return Merge(memos...), nil
}

// Merge aggregates memos in the given order. The latest date represents
// the result and the earliest..latest span is kept as its DateRange.
func Merge(memos ...*model.ParsedMemo) *model.ParsedMemo {
	if len(memos) == 0 {
		return nil
	}
	if len(memos) == 1 {
		return memos[0]
	}

	merged := &model.ParsedMemo{
		Date:      memos[0].Date,
		DateRange: &model.DateRange{Start: memos[0].Date, End: memos[0].Date},
	}

	seen := make(map[string]bool)
	contents := make([]string, 0, len(memos))
	for _, m := range memos {
		merged.Activities = append(merged.Activities, m.Activities...)
		for _, h := range m.Highlights {
			if !seen[h] {
				seen[h] = true
				merged.Highlights = append(merged.Highlights, h)
			}
		}
		contents = append(contents, m.Content)

		if m.Date.After(merged.Date) {
			merged.Date = m.Date
		}
		if m.Date.Before(merged.DateRange.Start) {
			merged.DateRange.Start = m.Date
		}
		if m.Date.After(merged.DateRange.End) {
			merged.DateRange.End = m.Date
		}
	}
	merged.Content = strings.Join(contents, "\n\n")

	return merged
}

func displayName(hint string) string {
	if hint == "" {
		return "<text>"
	}
	return filepath.Base(hint)
}
