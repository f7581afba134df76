package model

import "fmt"

// Style selects the tone directive embedded in the prompt.
type Style string

const (
	StyleAnalytical    Style = "analytical"
	StyleComprehensive Style = "comprehensive"
)

// ParseStyle maps a user supplied string to a Style.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleAnalytical, StyleComprehensive:
		return Style(s), nil
	}
	return "", fmt.Errorf("%w: unknown style %q (want %s or %s)", ErrInput, s, StyleAnalytical, StyleComprehensive)
}

// Persona is one of the two broadcast speakers.
type Persona struct {
	Name         string  `yaml:"name"`
	Voice        string  `yaml:"voice"`
	Character    string  `yaml:"character"`
	SpeakingRate float64 `yaml:"speaking_rate"`
}

// Personas holds the lead host and the supporting commentator.
type Personas struct {
	Host        Persona `yaml:"host"`
	Commentator Persona `yaml:"commentator"`
}

// Lookup returns the persona whose name matches exactly.
func (p Personas) Lookup(name string) (Persona, bool) {
	switch name {
	case p.Host.Name:
		return p.Host, true
	case p.Commentator.Name:
		return p.Commentator, true
	}
	return Persona{}, false
}

// Names returns host then commentator.
func (p Personas) Names() []string {
	return []string{p.Host.Name, p.Commentator.Name}
}
