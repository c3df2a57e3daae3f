package domain

// Validation statuses. Status is a deterministic function of the overall
// score via fixed thresholds.
const (
	StatusValidated = "validated"
	StatusWarning   = "warning"
	StatusFailed    = "failed"
)

// Score thresholds mapping an overall score to a status.
const (
	ValidatedThreshold = 80.0
	WarningThreshold   = 50.0
)

// Content component weights. The weighted sum defines the overall score.
const (
	GroundingWeight = 0.4
	StructureWeight = 0.3
	RelevanceWeight = 0.3
)

// Issue severities.
const (
	IssueError   = "error"
	IssueWarning = "warning"
	IssueInfo    = "info"
)

// Issue is a single problem found during validation.
type Issue struct {
	// Type is error, warning or info.
	Type string

	// Message describes the problem.
	Message string

	// Line is the 1-based source line for code issues, zero when not
	// applicable.
	Line int

	// Suggestion describes how to address the problem.
	Suggestion string
}

// ValidationResult is the post-hoc assessment of a generated artifact.
// A failed validation classifies the artifact, not the system: it is
// data, never a Go error.
type ValidationResult struct {
	// Status is validated, warning or failed.
	Status string

	// OverallScore is in [0,100].
	OverallScore float64

	// ComponentScores holds the independently computed component scores
	// keyed by component name ("grounding", "structure", "relevance",
	// "syntax", "lint", "execution").
	ComponentScores map[string]float64

	// Issues lists the problems found.
	Issues []Issue

	// Suggestions lists improvement recommendations.
	Suggestions []string

	// SyntaxValid is set by the code pipeline.
	SyntaxValid bool

	// ExecutionRan reports whether sandboxed execution was attempted.
	ExecutionRan bool
}

// StatusForScore maps an overall score to its status.
func StatusForScore(score float64) string {
	switch {
	case score >= ValidatedThreshold:
		return StatusValidated
	case score >= WarningThreshold:
		return StatusWarning
	default:
		return StatusFailed
	}
}

// ErrorCount returns the number of error-severity issues.
func (r *ValidationResult) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Type == IssueError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-severity issues.
func (r *ValidationResult) WarningCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Type == IssueWarning {
			n++
		}
	}
	return n
}
