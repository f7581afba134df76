package parser

import (
	"context"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

// Parser turns free-text activity memos into a ParsedMemo.
type Parser interface {
	// Parse decodes data and extracts date, activities and highlights.
	// sourceHint is usually the file path and is searched for a date
	// when the body carries none.
	Parse(ctx context.Context, data []byte, sourceHint string) (*model.ParsedMemo, error)
	ParseFile(ctx context.Context, path string) (*model.ParsedMemo, error)
	// ParseDir parses every memo file in dir and merges them (weekly mode).
	ParseDir(ctx context.Context, dir string) (*model.ParsedMemo, error)
}
