package model

// AudioClip is one synthesized chunk of speech.
// SampleRate > 0 marks Data as raw signed 16-bit little-endian mono PCM;
// zero means Data is already in an encoded container.
type AudioClip struct {
	Data            []byte
	SampleRate      int
	DurationSeconds float64
}

// Turn is one dialogue line bound to a synthesis voice.
type Turn struct {
	Speaker string
	Text    string
	Voice   string
}
