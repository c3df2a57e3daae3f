package domain

import "time"

// Generation kinds.
const (
	GenerationTheoryNotes      = "theory_notes"
	GenerationTheorySummary    = "theory_summary"
	GenerationTheoryStudyGuide = "theory_study_guide"
	GenerationCodeExample      = "code_example"
	GenerationCodeSolution     = "code_solution"
)

// Generation is a persisted generated artifact together with the
// evidence it drew on and its validation outcome.
type Generation struct {
	// ID is the unique identifier for the generation.
	ID string

	// CourseID is the scope the generation ran in.
	CourseID string

	// Kind is one of the Generation* constants.
	Kind string

	// Topic is the requested topic, truncated for storage.
	Topic string

	// Language is set for code generations.
	Language string

	// Content is the generated text or code.
	Content string

	// Sources records the evidence the generation drew on.
	Sources []ContextSource

	// UsedWebSearch reports whether web evidence was merged in.
	UsedWebSearch bool

	// SourceMixRatio is the course share of the evidence set:
	// course/(course+web), 1.0 when no web evidence was used.
	SourceMixRatio float64

	// Validation is the post-hoc assessment, nil when validation was
	// skipped.
	Validation *ValidationResult

	// Note carries an advisory about evidence quality, such as limited
	// course coverage of the topic.
	Note string

	// CreatedAt is when the generation was stored.
	CreatedAt time.Time
}
