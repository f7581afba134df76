package transcript

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/cheercast/internal/logger"
	"github.com/nguyentantai21042004/cheercast/internal/model"
)

var testPersonas = model.Personas{
	Host:        model.Persona{Name: "あかり", Voice: "Kore"},
	Commentator: model.Persona{Name: "けんた", Voice: "Puck"},
}

func testScript() *model.Script {
	return &model.Script{
		Title: "2024年1月20日のToday's You",
		Date:  time.Date(2024, time.January, 20, 0, 0, 0, 0, time.Local),
		Segments: []model.Segment{
			{Type: model.SegmentOpening, Lines: []model.DialogueLine{{Speaker: "あかり", Text: "こんにちは"}}},
			{Type: model.SegmentEnding, Lines: []model.DialogueLine{{Speaker: "けんた", Text: "また明日"}}},
		},
	}
}

func TestWriteText(t *testing.T) {
	w := New(testPersonas, logger.NewNop())
	path := filepath.Join(t.TempDir(), "out", "script.txt")

	require.NoError(t, w.Write(context.Background(), testScript(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[オープニング]\nあかり: こんにちは")
	assert.Contains(t, string(data), "[エンディング]\nけんた: また明日")
}

func TestWriteDocx(t *testing.T) {
	w := New(testPersonas, logger.NewNop())
	path := filepath.Join(t.TempDir(), "script.docx")

	require.NoError(t, w.Write(context.Background(), testScript(), path))

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var body string
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		body = string(data)
	}

	require.NotEmpty(t, body, "document.xml missing")
	for _, want := range []string{"2024年1月20日", "オープニング", "こんにちは", "また明日"} {
		assert.Contains(t, body, want)
	}
}

func TestWriteNilScript(t *testing.T) {
	w := New(testPersonas, logger.NewNop())
	err := w.Write(context.Background(), nil, filepath.Join(t.TempDir(), "x.txt"))
	assert.ErrorIs(t, err, model.ErrExportFailed)
}
