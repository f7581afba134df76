package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

// ScriptSource is a raw model response in one of the two supported shapes.
type ScriptSource interface {
	segments(personas model.Personas) ([]model.Segment, error)
}

// StructuredSource is schema-constrained JSON.
type StructuredSource struct {
	Raw []byte
}

// FreeformSource is bracket-sectioned "name: text" prose.
type FreeformSource struct {
	Text string
}

type structuredScript struct {
	Segments []struct {
		Type      string `json:"type"`
		Dialogues []struct {
			Speaker string `json:"speaker"`
			Text    string `json:"text"`
		} `json:"dialogues"`
	} `json:"segments"`
}

func (s StructuredSource) segments(personas model.Personas) ([]model.Segment, error) {
	var resp structuredScript
	if err := json.Unmarshal([]byte(stripCodeFence(string(s.Raw))), &resp); err != nil {
		return nil, fmt.Errorf("%w: decode JSON: %w", model.ErrInvalidScriptFormat, err)
	}

	var segments []model.Segment
	for _, seg := range resp.Segments {
		typ, ok := segmentTypes[seg.Type]
		if !ok {
			continue
		}
		var lines []model.DialogueLine
		for _, d := range seg.Dialogues {
			if line, ok := dialogueLine(personas, d.Speaker, d.Text); ok {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			segments = append(segments, model.Segment{Type: typ, Lines: lines})
		}
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: no valid segments found", model.ErrInvalidScriptFormat)
	}
	return segments, nil
}

var (
	sectionMarker = regexp.MustCompile(`\[(オープニング|メイン|エンディング)\]`)
	dialogueRe    = regexp.MustCompile(`^(.+?)\s*[:：]\s*(.+)$`)
)

var sectionLabels = map[string]model.SegmentType{
	model.SegmentOpening.Label(): model.SegmentOpening,
	model.SegmentMain.Label():    model.SegmentMain,
	model.SegmentEnding.Label():  model.SegmentEnding,
}

var segmentTypes = map[string]model.SegmentType{
	string(model.SegmentOpening): model.SegmentOpening,
	string(model.SegmentMain):    model.SegmentMain,
	string(model.SegmentEnding):  model.SegmentEnding,
}

func (s FreeformSource) segments(personas model.Personas) ([]model.Segment, error) {
	matches := sectionMarker.FindAllStringSubmatchIndex(s.Text, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no sections found", model.ErrInvalidScriptFormat)
	}

	var segments []model.Segment
	for i, m := range matches {
		label := s.Text[m[2]:m[3]]
		end := len(s.Text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		lines := parseDialogue(personas, s.Text[m[1]:end])
		if len(lines) > 0 {
			segments = append(segments, model.Segment{Type: sectionLabels[label], Lines: lines})
		}
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: no valid segments found", model.ErrInvalidScriptFormat)
	}
	return segments, nil
}

func parseDialogue(personas model.Personas, body string) []model.DialogueLine {
	var lines []model.DialogueLine
	for _, raw := range strings.Split(body, "\n") {
		m := dialogueRe.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			continue
		}
		if line, ok := dialogueLine(personas, m[1], m[2]); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

// dialogueLine drops lines whose speaker is not a configured persona.
func dialogueLine(personas model.Personas, speaker, text string) (model.DialogueLine, bool) {
	speaker = strings.TrimSpace(speaker)
	text = strings.TrimSpace(text)
	if _, ok := personas.Lookup(speaker); !ok || speaker == "" || text == "" {
		return model.DialogueLine{}, false
	}
	return model.DialogueLine{Speaker: speaker, Text: text}, true
}

// stripCodeFence removes a ```json fence some models add despite the MIME type.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
