package generator

import (
	"google.golang.org/genai"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

// scriptSchema constrains structured responses to the known segment
// types and the two persona names.
func scriptSchema(personas model.Personas) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"segments": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"type": {
							Type: genai.TypeString,
							Enum: []string{
								string(model.SegmentOpening),
								string(model.SegmentMain),
								string(model.SegmentEnding),
							},
						},
						"dialogues": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"speaker": {Type: genai.TypeString, Enum: personas.Names()},
									"text":    {Type: genai.TypeString},
								},
								Required: []string{"speaker", "text"},
							},
						},
					},
					Required: []string{"type", "dialogues"},
				},
			},
		},
		Required: []string{"segments"},
	}
}
