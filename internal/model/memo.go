package model

import "time"

// Category classifies a single activity line.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryLearning Category = "learning"
	CategoryHealth   Category = "health"
	CategoryPersonal Category = "personal"
	CategoryOther    Category = "other"
)

// Activity is one categorized line from a memo.
type Activity struct {
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Achievement string   `json:"achievement,omitempty"`
}

// DateRange spans the memos merged in weekly mode.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ParsedMemo is the parser output consumed by the script generator.
type ParsedMemo struct {
	Date       time.Time  `json:"date"`
	DateRange  *DateRange `json:"date_range,omitempty"`
	Content    string     `json:"content"`
	Activities []Activity `json:"activities"`
	Highlights []string   `json:"highlights"`
	Summary    string     `json:"summary,omitempty"`
}
