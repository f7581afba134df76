package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

const (
	fontName  = "Yu Gothic"
	fontSize  = 11
	titleSize = 16
	labelSize = 13

	hostColor        = "1F4E79"
	commentatorColor = "7F3F00"
)

func (w *implWriter) Write(ctx context.Context, script *model.Script, path string) error {
	if script == nil {
		return fmt.Errorf("%w: nil script", model.ErrExportFailed)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: create transcript dir: %w", model.ErrExportFailed, err)
	}

	var err error
	if strings.EqualFold(filepath.Ext(path), ".docx") {
		err = w.writeDocx(script, path)
	} else {
		err = os.WriteFile(path, []byte(script.String()), 0644)
	}
	if err != nil {
		return fmt.Errorf("%w: write transcript: %w", model.ErrExportFailed, err)
	}

	w.logger.Info(ctx, "Transcript saved: %s", path)
	return nil
}

// writeDocx renders the title, one heading per segment and one paragraph
// per line with the speaker name in bold.
func (w *implWriter) writeDocx(script *model.Script, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), script.Title, titleSize, "000000", true)

	for _, seg := range script.Segments {
		doc.AddParagraph("")
		addStyledRun(doc.AddParagraph(""), seg.Type.Label(), labelSize, "000000", true)

		for _, line := range seg.Lines {
			p := doc.AddParagraph("")
			addStyledRun(p, line.Speaker+": ", fontSize, w.speakerColor(line.Speaker), true)
			addStyledRun(p, line.Text, fontSize, "000000", false)
		}
	}

	return doc.SaveTo(path)
}

func (w *implWriter) speakerColor(name string) string {
	if name == w.personas.Commentator.Name {
		return commentatorColor
	}
	return hostColor
}

func addStyledRun(p *docx.Paragraph, text string, size uint64, color string, bold bool) {
	run := p.AddText(text).Font(fontName).Size(size).Color(color)
	if bold {
		run.Bold(true)
	}
}
