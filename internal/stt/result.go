package stt

// Result represents the result of a speech-to-text transcription
type Result struct {
	Transcript string // The transcribed text
	Provider   string // The provider used
}
