package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "duplicate persona names",
			config: Config{
				Personas: model.Personas{
					Host:        model.Persona{Name: "あかり", Voice: "Kore"},
					Commentator: model.Persona{Name: "あかり", Voice: "Puck"},
				},
			},
			wantErr: true,
		},
		{
			name: "missing voice",
			config: Config{
				Personas: model.Personas{
					Host:        model.Persona{Name: "あかり"},
					Commentator: model.Persona{Name: "けんた", Voice: "Puck"},
				},
			},
			wantErr: true,
		},
		{
			name:    "unknown response mode",
			config:  Config{Gemini: GeminiConfig{ResponseMode: "xml"}},
			wantErr: true,
		},
		{
			name:    "duration out of range",
			config:  Config{Audio: AudioConfig{Duration: 90}},
			wantErr: true,
		},
		{
			name:    "unknown style",
			config:  Config{Audio: AudioConfig{Style: "gentle"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	var cfg Config
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Audio.TargetLoudness != -16 {
		t.Errorf("TargetLoudness = %v, want -16", cfg.Audio.TargetLoudness)
	}
	if cfg.Audio.Bitrate != "192k" {
		t.Errorf("Bitrate = %v, want 192k", cfg.Audio.Bitrate)
	}
	if cfg.BGM.Ducking != 0.15 || cfg.BGM.Volume != 0.3 || cfg.BGM.Outro != 2 {
		t.Errorf("BGM defaults = %+v", cfg.BGM)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.InitialDelay != time.Second {
		t.Errorf("Retry defaults = %+v", cfg.Retry)
	}
	if cfg.Personas.Host.SpeakingRate != 0.95 {
		t.Errorf("Host.SpeakingRate = %v, want 0.95", cfg.Personas.Host.SpeakingRate)
	}
	if cfg.Gemini.ResponseMode != "structured" {
		t.Errorf("ResponseMode = %v, want structured", cfg.Gemini.ResponseMode)
	}
}

func TestValidateBGMPartialDefaults(t *testing.T) {
	cfg := Config{BGM: BGMConfig{Path: "bgm.mp3", Volume: 0.5, Intro: 1}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	want := BGMConfig{Path: "bgm.mp3", Volume: 0.5, Ducking: 0.15, FadeIn: 3, FadeOut: 3, Intro: 1, Outro: 2}
	if cfg.BGM != want {
		t.Errorf("BGM = %+v, want %+v", cfg.BGM, want)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	content := `
gemini:
  api_keys: ["k1", "k2"]
  response_mode: freeform

show:
  name: "Weekly You"

personas:
  host:
    name: "みき"
    voice: "Aoede"
    character: "進行役"
  commentator:
    name: "ひろ"
    voice: "Charon"
    character: "分析役"
    speaking_rate: 1.1

retry:
  initial_delay: 250ms

paths:
  input: "data/in"
  output: "data/out"

logging:
  level: "debug"
  format: "json"
`

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Gemini.APIKeys) != 2 {
		t.Errorf("APIKeys = %v, want 2 keys", cfg.Gemini.APIKeys)
	}
	if cfg.Personas.Host.Name != "みき" {
		t.Errorf("Host.Name = %v, want みき", cfg.Personas.Host.Name)
	}
	if cfg.Personas.Commentator.SpeakingRate != 1.1 {
		t.Errorf("Commentator.SpeakingRate = %v, want 1.1", cfg.Personas.Commentator.SpeakingRate)
	}
	if cfg.Retry.InitialDelay != 250*time.Millisecond {
		t.Errorf("InitialDelay = %v, want 250ms", cfg.Retry.InitialDelay)
	}
	if cfg.Paths.Input != "data/in" {
		t.Errorf("Input = %v, want data/in", cfg.Paths.Input)
	}
	if cfg.Paths.Temp != "data/temp" {
		t.Errorf("Temp = %v, want data/temp", cfg.Paths.Temp)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Show.Name != "Today's You" {
		t.Errorf("Show.Name = %v, want default", cfg.Show.Name)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gemini: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should return error for malformed yaml")
	}
}
