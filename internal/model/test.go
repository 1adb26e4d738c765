package model

// Test types supported by the generator.
const (
	TypeWriting  = "writing"
	TypeSpeaking = "speaking"
)

// Question is a single writing task prompt.
type Question struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

// SpeakingPart is one section of a speaking test. Part 1 and 3 carry
// question items; part 2 carries a cue card with time budgets in seconds.
type SpeakingPart struct {
	Part      int      `json:"part"`
	Items     []string `json:"items,omitempty"`
	Cue       string   `json:"cue,omitempty"`
	PrepTime  int      `json:"prep_time,omitempty"`
	SpeakTime int      `json:"speak_time,omitempty"`
}

// Test is a generated exam instance. Writing tests carry Questions,
// speaking tests carry Parts; a Test is immutable once stored.
// JSON keys follow the generation contract sent to the model.
type Test struct {
	TestID    string         `json:"test_id"`
	Type      string         `json:"type"`
	Level     string         `json:"level"`
	Questions []Question     `json:"questions,omitempty"`
	Parts     []SpeakingPart `json:"parts,omitempty"`
}
