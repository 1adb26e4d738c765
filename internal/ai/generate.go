package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"ieltslab/internal/model"
)

const (
	defaultLevel      = "B2"
	generateMaxTokens = 1200

	fallbackPrompt = "Write an essay (250+ words) on: The benefits of online education."
)

// GenerateResult is the outcome of one generation call. FallbackUsed is
// set when the external call failed or returned unparsable content and
// the canned writing test was substituted.
type GenerateResult struct {
	Test         *model.Test
	FallbackUsed bool
}

// Generator produces practice tests, delegating writing-test content to
// the chat model. Generation never returns an error: the writing path
// degrades to a fixed fallback test instead.
type Generator struct {
	client chatClient
	model  string
}

func NewGenerator(client chatClient, model string) *Generator {
	return &Generator{client: client, model: model}
}

// Generate builds a test of the given type. The test_id is always minted
// locally; an id echoed back by the model is ignored.
func (g *Generator) Generate(ctx context.Context, testType, level string, numTasks int) GenerateResult {
	if level == "" {
		level = defaultLevel
	}
	if numTasks <= 0 {
		numTasks = 1
	}
	testID := uuid.NewString()

	switch testType {
	case model.TypeWriting:
		return g.generateWriting(ctx, testID, level, numTasks)
	case model.TypeSpeaking:
		return GenerateResult{Test: speakingTest(testID, level)}
	default:
		// Unknown types get an empty stub rather than an error.
		return GenerateResult{Test: &model.Test{
			TestID:    testID,
			Type:      testType,
			Level:     level,
			Questions: []model.Question{},
		}}
	}
}

func (g *Generator) generateWriting(ctx context.Context, testID, level string, numTasks int) GenerateResult {
	systemPrompt, userPrompt := BuildWritingTestPrompt(level, numTasks)

	content, err := complete(ctx, g.client, g.model, systemPrompt, userPrompt, generateMaxTokens)
	if err != nil {
		log.Printf("[Generate] writing generation call failed: %v. Using fallback test.", err)
		return GenerateResult{Test: fallbackWritingTest(testID, level), FallbackUsed: true}
	}

	var parsed struct {
		Questions []model.Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(extractJSONFromMarkdown(content)), &parsed); err != nil || len(parsed.Questions) == 0 {
		log.Printf("[Generate] failed to parse generated test JSON (%v). Using fallback test.", err)
		return GenerateResult{Test: fallbackWritingTest(testID, level), FallbackUsed: true}
	}

	// The model occasionally leaves ids or titles blank.
	for i := range parsed.Questions {
		if strings.TrimSpace(parsed.Questions[i].ID) == "" {
			parsed.Questions[i].ID = fmt.Sprintf("q%d", i+1)
		}
		if strings.TrimSpace(parsed.Questions[i].Title) == "" {
			parsed.Questions[i].Title = "Writing Task 2"
		}
	}

	return GenerateResult{Test: &model.Test{
		TestID:    testID,
		Type:      model.TypeWriting,
		Level:     level,
		Questions: parsed.Questions,
	}}
}

func fallbackWritingTest(testID, level string) *model.Test {
	return &model.Test{
		TestID: testID,
		Type:   model.TypeWriting,
		Level:  level,
		Questions: []model.Question{
			{
				ID:     "q1",
				Title:  "Writing Task 2",
				Prompt: fallbackPrompt,
			},
		},
	}
}

// speakingTest returns the fixed three-part speaking structure. No
// external call is involved; only the id and level vary.
func speakingTest(testID, level string) *model.Test {
	return &model.Test{
		TestID: testID,
		Type:   model.TypeSpeaking,
		Level:  level,
		Parts: []model.SpeakingPart{
			{
				Part: 1,
				Items: []string{
					"Let's talk about your home town. What do you like most about living there?",
					"Do you work or are you a student?",
					"What do you usually do in your free time?",
					"How often do you spend time with your family?",
				},
			},
			{
				Part:      2,
				Cue:       "Describe a skill you would like to learn. You should say: what the skill is, why you want to learn it, how you would learn it, and explain how this skill would help you in the future.",
				PrepTime:  60,
				SpeakTime: 120,
			},
			{
				Part: 3,
				Items: []string{
					"Why do you think some people give up learning new skills quickly?",
					"Is it easier to learn new skills today than in the past? Why?",
					"What skills do you think will be most important in the future?",
				},
			},
		},
	}
}
