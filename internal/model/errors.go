package model

import "errors"

// Stage failures. Every stage wraps its cause with one of these so that
// callers can classify a failed run with errors.Is.
var (
	ErrInput               = errors.New("input error")
	ErrGenerationFailed    = errors.New("generation failed")
	ErrInvalidScriptFormat = errors.New("invalid script format")
	ErrSynthesisFailed     = errors.New("synthesis failed")
	ErrMixingFailed        = errors.New("mixing failed")
	ErrNoClips             = errors.New("no audio clips to concatenate")
	ErrExportFailed        = errors.New("export failed")
)
