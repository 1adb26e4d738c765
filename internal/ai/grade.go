package ai

import (
	"context"
	"encoding/json"
	"log"
)

const gradeMaxTokens = 900

// Grader scores submissions through the chat model. A failed call is an
// error; a successful call that returns non-JSON prose is preserved
// verbatim under a "raw" key so the caller still gets usable content.
type Grader struct {
	client chatClient
	model  string
}

func NewGrader(client chatClient, model string) *Grader {
	return &Grader{client: client, model: model}
}

// GradeWriting grades an essay and returns the band-score JSON.
func (g *Grader) GradeWriting(ctx context.Context, essay string) (json.RawMessage, error) {
	systemPrompt, userPrompt := BuildWritingGradingPrompt(essay)
	return g.grade(ctx, systemPrompt, userPrompt)
}

// GradeSpeaking grades a speech transcript and returns the band-score JSON.
func (g *Grader) GradeSpeaking(ctx context.Context, transcript string) (json.RawMessage, error) {
	systemPrompt, userPrompt := BuildSpeakingGradingPrompt(transcript)
	return g.grade(ctx, systemPrompt, userPrompt)
}

func (g *Grader) grade(ctx context.Context, systemPrompt, userPrompt string) (json.RawMessage, error) {
	content, err := complete(ctx, g.client, g.model, systemPrompt, userPrompt, gradeMaxTokens)
	if err != nil {
		return nil, err
	}

	if extracted := extractJSONFromMarkdown(content); json.Valid([]byte(extracted)) {
		return json.RawMessage(extracted), nil
	}

	log.Printf("[Grade] model returned non-JSON content (%d chars), storing raw", len(content))
	raw, err := json.Marshal(map[string]string{"raw": content})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}
