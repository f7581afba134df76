package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

// prepare validates req and fills configured defaults.
func (p *implPipeline) prepare(req *Request) error {
	if err := p.check(req); err != nil {
		return err
	}

	if req.Style == "" {
		req.Style = model.Style(p.cfg.Audio.Style)
	}
	if _, err := model.ParseStyle(string(req.Style)); err != nil {
		return err
	}
	if req.DurationMinutes == 0 {
		req.DurationMinutes = p.cfg.Audio.Duration
	}
	if req.Speed == 0 {
		req.Speed = p.cfg.Audio.Speed
	}
	return nil
}

func (p *implPipeline) check(v any) error {
	err := p.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", model.ErrInput, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", model.ErrInput, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required", "required_without", "required_unless":
		return field + " is required"
	case "excluded_with":
		return field + " cannot be combined with SourceText"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}
