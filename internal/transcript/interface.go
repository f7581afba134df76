package transcript

import (
	"context"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

// Writer saves a readable copy of a generated script.
type Writer interface {
	// Write picks the format from the extension of path: .docx is a Word
	// document, anything else is plain text.
	Write(ctx context.Context, script *model.Script, path string) error
}
