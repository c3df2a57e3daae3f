package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/logger"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/processing/codeparse"
)

// Code component point budgets. Overall score is their sum.
const (
	syntaxPoints    = 40.0
	lintPoints      = 30.0
	executionPoints = 30.0

	lintErrorPenalty   = 10.0
	lintWarningPenalty = 3.0

	executionSuccessPoints = executionPoints
	executionFailedPoints  = 10.0
	executionNeutralPoints = 15.0
)

// CodeValidator scores generated code: syntax 40 points (a hard gate),
// lint findings 30 points, optional sandboxed execution 30 points with
// neutral credit when not run. Invalid syntax forces the overall score
// to zero regardless of the other components.
type CodeValidator struct {
	runner driven.CodeRunner
}

// NewCodeValidator creates a code validator. A nil runner disables the
// execution component; validation then grants neutral execution credit.
func NewCodeValidator(runner driven.CodeRunner) *CodeValidator {
	return &CodeValidator{runner: runner}
}

// ValidateCode runs the code pipeline. runTests enables the sandboxed
// execution attempt for supported languages. An execution failure on
// its own never drops the result below warning.
func (v *CodeValidator) ValidateCode(
	ctx context.Context, code, language string, runTests bool,
) domain.ValidationResult {
	logger.Section("Code Validation")
	language = strings.ToLower(language)

	result := domain.ValidationResult{
		ComponentScores: map[string]float64{},
	}

	if issue := codeparse.CheckSyntax(code, language); issue != nil {
		result.Status = domain.StatusFailed
		result.OverallScore = 0
		result.SyntaxValid = false
		result.ComponentScores["syntax"] = 0
		result.Issues = append(result.Issues, domain.Issue{
			Type:       domain.IssueError,
			Message:    issue.Message,
			Line:       issue.Line,
			Suggestion: "Fix the syntax error",
		})
		result.Suggestions = append(result.Suggestions, "Fix syntax errors before use")
		logger.Info("Code validation: failed (syntax: %s)", issue.Message)
		return result
	}
	result.SyntaxValid = true
	result.ComponentScores["syntax"] = syntaxPoints

	lintIssues := lintCode(code, language)
	result.Issues = append(result.Issues, lintIssues...)
	result.ComponentScores["lint"] = lintScore(lintIssues)

	result.ComponentScores["execution"] = v.tryExecute(ctx, code, language, runTests, &result)

	result.OverallScore = result.ComponentScores["syntax"] +
		result.ComponentScores["lint"] +
		result.ComponentScores["execution"]
	result.Status = domain.StatusForScore(result.OverallScore)
	result.Suggestions = append(result.Suggestions, codeSuggestions(&result)...)

	logger.Info("Code validation: %s (%.1f; lint=%.0f execution=%.0f)",
		result.Status, result.OverallScore,
		result.ComponentScores["lint"], result.ComponentScores["execution"])
	return result
}

// lintScore spends the lint point budget on findings. Info findings are
// free.
func lintScore(issues []domain.Issue) float64 {
	score := lintPoints
	for _, issue := range issues {
		switch issue.Type {
		case domain.IssueError:
			score -= lintErrorPenalty
		case domain.IssueWarning:
			score -= lintWarningPenalty
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

// tryExecute runs the code when a runner is configured and the language
// is supported. Not running at all earns neutral credit; a failed run
// earns partial credit and a warning issue.
func (v *CodeValidator) tryExecute(
	ctx context.Context, code, language string, runTests bool, result *domain.ValidationResult,
) float64 {
	if !runTests || v.runner == nil || !v.runner.Supports(language) {
		return executionNeutralPoints
	}

	result.ExecutionRan = true
	exec, err := v.runner.Run(ctx, code, language)
	if err != nil {
		logger.Warn("Code execution unavailable: %v", err)
		result.Issues = append(result.Issues, domain.Issue{
			Type:       domain.IssueWarning,
			Message:    fmt.Sprintf("Execution could not be attempted: %v", err),
			Suggestion: "Run the code manually to verify it",
		})
		return executionFailedPoints
	}
	if !exec.Success {
		detail := exec.Error
		if detail == "" {
			detail = strings.TrimSpace(exec.Stderr)
		}
		result.Issues = append(result.Issues, domain.Issue{
			Type:       domain.IssueWarning,
			Message:    fmt.Sprintf("Execution failed: %s", detail),
			Suggestion: "Check the runtime error and fix the code",
		})
		return executionFailedPoints
	}
	return executionSuccessPoints
}

// lintCode applies lightweight per-language heuristics, mirroring the
// kind of findings a real linter reports at far lower cost.
func lintCode(code, language string) []domain.Issue {
	switch language {
	case "python":
		return lintPython(code)
	case "javascript", "typescript":
		return lintJavaScript(code)
	default:
		return nil
	}
}

func lintPython(code string) []domain.Issue {
	var issues []domain.Issue
	for i, line := range strings.Split(code, "\n") {
		lineNo := i + 1
		if len(line) > 120 {
			issues = append(issues, domain.Issue{
				Type:       domain.IssueWarning,
				Message:    fmt.Sprintf("Line too long (%d > 120)", len(line)),
				Line:       lineNo,
				Suggestion: "Consider breaking this line",
			})
		}
		if idx := strings.Index(line, "print("); idx >= 0 && !strings.Contains(line[:idx], "#") {
			issues = append(issues, domain.Issue{
				Type:       domain.IssueInfo,
				Message:    "Print statement found",
				Line:       lineNo,
				Suggestion: "Use logging for production code",
			})
		}
		if strings.Contains(line, "TODO") || strings.Contains(line, "FIXME") {
			issues = append(issues, domain.Issue{
				Type:       domain.IssueInfo,
				Message:    "TODO/FIXME comment found",
				Line:       lineNo,
				Suggestion: "Complete or remove TODO items",
			})
		}
	}
	return issues
}

func lintJavaScript(code string) []domain.Issue {
	var issues []domain.Issue
	for i, line := range strings.Split(code, "\n") {
		lineNo := i + 1
		if strings.Contains(line, "var ") {
			issues = append(issues, domain.Issue{
				Type:       domain.IssueWarning,
				Message:    "Use 'let' or 'const' instead of 'var'",
				Line:       lineNo,
				Suggestion: "Replace 'var' with 'let' or 'const'",
			})
		}
		if strings.Contains(line, "console.log") {
			issues = append(issues, domain.Issue{
				Type:       domain.IssueInfo,
				Message:    "console.log found",
				Line:       lineNo,
				Suggestion: "Remove debug statements for production",
			})
		}
	}
	return issues
}

func codeSuggestions(result *domain.ValidationResult) []string {
	var suggestions []string
	if n := result.ErrorCount(); n > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Address %d error(s) in the code", n))
	}
	if n := result.WarningCount(); n > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Consider fixing %d warning(s)", n))
	}
	if result.OverallScore == 100 {
		suggestions = append(suggestions, "Code looks good and is ready for use")
	}
	return suggestions
}
