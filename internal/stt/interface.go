package stt

import (
	"context"
	"io"
)

// Provider defines the interface for speech-to-text providers
type Provider interface {
	// Transcribe transcribes an audio stream and returns the result
	Transcribe(ctx context.Context, audio io.Reader, filename string) (*Result, error)

	// Name returns the name of the provider (e.g., "whisper")
	Name() string
}
