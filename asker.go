package linkex

import "context"

// Preset names a canned question.
type Preset string

// Canned questions offered for every record.
const (
	PresetSummary    Preset = "summary"
	PresetExperience Preset = "experience"
	PresetEducation  Preset = "education"
	PresetSkills     Preset = "skills"
)

var presetQuestions = map[Preset]string{
	PresetSummary:    "Can you provide a comprehensive summary of this profile?",
	PresetExperience: "What is their professional experience background?",
	PresetEducation:  "Tell me about their educational background",
	PresetSkills:     "What skills and expertise does this person have?",
}

// Presets returns the supported presets.
func Presets() []Preset {
	return []Preset{PresetSummary, PresetExperience, PresetEducation, PresetSkills}
}

// Question returns the canned question for the preset.
// Returns EINVALID for unknown presets.
func (p Preset) Question() (string, error) {
	q, ok := presetQuestions[p]
	if !ok {
		return "", Errorf(EINVALID, "unknown preset %q (want summary, experience, education or skills)", p)
	}
	return q, nil
}

// AskRequest describes a question about one or more records.
type AskRequest struct {
	RecordIDs []string
	Question  string
	Preset    Preset

	// UseHistory includes earlier turns of the same conversation and
	// records the new turn.
	UseHistory bool
}

// Answer is the grounded response to a question.
type Answer struct {
	Question string
	Text     string
	Sources  []SearchResult
}

// Asker provides natural language question answering over records.
type Asker interface {
	// Ask answers a natural language question about the requested records.
	// Returns ENOTFOUND if the records have not been indexed.
	Ask(ctx context.Context, req AskRequest) (*Answer, error)
}

// Generator produces text completions from a language model.
type Generator interface {
	// Generate completes prompt under the given system instruction.
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// ModelService lists the language models a local backend can serve.
type ModelService interface {
	// Heartbeat returns EUNAVAILABLE if the backend is not reachable.
	Heartbeat(ctx context.Context) error

	// ListModels returns the names of installed models.
	ListModels(ctx context.Context) ([]string, error)
}
