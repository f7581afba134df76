package model

import (
	"fmt"
	"strings"
	"time"
)

// SegmentType names a section of the broadcast.
type SegmentType string

const (
	SegmentOpening SegmentType = "opening"
	SegmentMain    SegmentType = "main"
	SegmentEnding  SegmentType = "ending"
)

// DialogueLine is the single canonical shape of a spoken line.
// Speaker is always one of the two configured persona names.
type DialogueLine struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Segment is an ordered block of dialogue.
type Segment struct {
	Type  SegmentType    `json:"type"`
	Lines []DialogueLine `json:"lines"`
}

// Script is a generated two-speaker broadcast.
type Script struct {
	Title           string    `json:"title"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Segments        []Segment `json:"segments"`
}

// Lines flattens all segments in order.
func (s *Script) Lines() []DialogueLine {
	var lines []DialogueLine
	for _, seg := range s.Segments {
		lines = append(lines, seg.Lines...)
	}
	return lines
}

// String renders the script in the bracketed section format.
func (s *Script) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.Title)
	for _, seg := range s.Segments {
		fmt.Fprintf(&b, "\n[%s]\n", seg.Type.Label())
		for _, l := range seg.Lines {
			fmt.Fprintf(&b, "%s: %s\n", l.Speaker, l.Text)
		}
	}
	return b.String()
}

// Label is the bracket marker used in freeform scripts.
func (t SegmentType) Label() string {
	switch t {
	case SegmentOpening:
		return "オープニング"
	case SegmentMain:
		return "メイン"
	case SegmentEnding:
		return "エンディング"
	}
	return string(t)
}
