package ai

import "fmt"

// BuildWritingTestPrompt builds the prompt pair for writing test generation.
func BuildWritingTestPrompt(level string, numTasks int) (string, string) {
	systemPrompt := `You are an IELTS examiner preparing Academic Writing practice tests.
You must return VALID JSON only - no prose, no markdown, no explanations.
Do NOT invent extra fields. Fill every field.`

	userPrompt := fmt.Sprintf(`Create an IELTS Writing practice test for a %s level candidate.

Requirements:
- Exactly %d Writing Task 2 essay prompts
- Each prompt must be a complete, self-contained essay question (250+ words expected)
- Topics must be varied and appropriate for the level

Return JSON exactly in this format:

{
  "test_id": "string",
  "type": "writing",
  "level": "%s",
  "questions": [
    {"id": "q1", "title": "Writing Task 2", "prompt": "essay question here"}
  ]
}`, level, numTasks, level)

	return systemPrompt, userPrompt
}

// BuildWritingGradingPrompt builds the prompt pair for grading an essay.
func BuildWritingGradingPrompt(essay string) (string, string) {
	systemPrompt := `You are an IELTS Writing examiner. Grade the essay against the official
band descriptors. Be accurate and consistent.
Return VALID JSON only - no prose, no markdown.`

	userPrompt := fmt.Sprintf(`Grade this IELTS Writing Task 2 essay:

"""
%s
"""

Return JSON exactly in this format (bands on the 0-9 scale, halves allowed):

{
  "estimated_overall_band": 0.0,
  "criteria": {
    "task_response": 0.0,
    "coherence_and_cohesion": 0.0,
    "lexical_resource": 0.0,
    "grammatical_range_and_accuracy": 0.0
  },
  "feedback": "short overall feedback",
  "strengths": ["..."],
  "weaknesses": ["..."],
  "tips": ["..."],
  "confidence": 0.0
}`, essay)

	return systemPrompt, userPrompt
}

// BuildSpeakingGradingPrompt builds the prompt pair for grading a speech transcript.
func BuildSpeakingGradingPrompt(transcript string) (string, string) {
	systemPrompt := `You are an IELTS Speaking examiner. Grade the transcript against the official
band descriptors, keeping in mind pronunciation can only be estimated from text.
Return VALID JSON only - no prose, no markdown.`

	userPrompt := fmt.Sprintf(`Grade this transcript of an IELTS Speaking test answer:

"""
%s
"""

Return JSON exactly in this format (bands on the 0-9 scale, halves allowed):

{
  "estimated_overall_band": 0.0,
  "criteria": {
    "fluency_and_coherence": 0.0,
    "lexical_resource": 0.0,
    "grammatical_range_and_accuracy": 0.0,
    "pronunciation": 0.0
  },
  "feedback": "short overall feedback",
  "strengths": ["..."],
  "weaknesses": ["..."],
  "tips": ["..."],
  "confidence": 0.0
}`, transcript)

	return systemPrompt, userPrompt
}
