package stt

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// WhisperProvider implements STT using the OpenAI audio transcription API.
type WhisperProvider struct {
	client *openai.Client
}

// NewWhisperProvider creates a Whisper STT provider from an existing client.
func NewWhisperProvider(client *openai.Client) *WhisperProvider {
	return &WhisperProvider{client: client}
}

// Name returns the provider name
func (p *WhisperProvider) Name() string {
	return "whisper"
}

// Transcribe sends the audio stream to the transcription API and returns
// the transcript. The filename is required by the API to detect the
// container format, so an empty name gets a generic fallback.
func (p *WhisperProvider) Transcribe(ctx context.Context, audio io.Reader, filename string) (*Result, error) {
	if filename == "" {
		filename = "audio.m4a"
	}

	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   audio,
		FilePath: filename,
	})
	if err != nil {
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	log.Printf("[Whisper] transcription successful: length=%d", len(text))

	if text == "" {
		return nil, fmt.Errorf("no speech detected in audio")
	}

	return &Result{
		Transcript: text,
		Provider:   p.Name(),
	}, nil
}
