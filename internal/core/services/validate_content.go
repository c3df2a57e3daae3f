package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/logger"
)

// trustedDomains are sources the web-citation advisory check accepts
// without flagging. "edu" matches any .edu host.
var trustedDomains = []string{
	"wikipedia.org", "docs.python.org", "developer.mozilla.org",
	"stackoverflow.com", "github.com", "microsoft.com",
	"oracle.com", "w3schools.com", "geeksforgeeks.org",
	"tutorialspoint.com", "edu",
}

var urlPattern = regexp.MustCompile(`https?://([^\s)]+)`)

// relevanceSample bounds how much content is sent to the judge.
const relevanceSample = 2000

// ContentValidator scores generated theory content against grounding,
// structure and relevance signals. The weighted component sum maps to a
// status through fixed thresholds. Validation classifies the artifact;
// it never returns a Go error for a bad artifact.
type ContentValidator struct {
	retriever *Retriever
	judge     driven.LLMService
}

// NewContentValidator creates a content validator. The judge may be
// nil, in which case the relevance component stays at its neutral
// default.
func NewContentValidator(retriever *Retriever, judge driven.LLMService) *ContentValidator {
	return &ContentValidator{retriever: retriever, judge: judge}
}

// ValidateContent runs the content pipeline: grounding 40%, structure
// 30%, relevance 30%.
func (v *ContentValidator) ValidateContent(
	ctx context.Context, content, topic, courseID string,
) domain.ValidationResult {
	logger.Section("Content Validation")

	result := domain.ValidationResult{
		ComponentScores: map[string]float64{},
	}

	structureScore, structureIssues := checkStructure(content)
	result.ComponentScores["structure"] = structureScore
	result.Issues = append(result.Issues, structureIssues...)

	relevanceScore, relevanceIssues := v.checkRelevance(ctx, content, topic)
	result.ComponentScores["relevance"] = relevanceScore
	result.Issues = append(result.Issues, relevanceIssues...)

	groundingScore, groundingIssues := v.checkGrounding(ctx, content, topic, courseID)
	result.ComponentScores["grounding"] = groundingScore
	result.Issues = append(result.Issues, groundingIssues...)

	// Advisory only: issues and suggestions, no score contribution.
	result.Issues = append(result.Issues, checkWebCitations(content)...)

	result.OverallScore = groundingScore*domain.GroundingWeight +
		structureScore*domain.StructureWeight +
		relevanceScore*domain.RelevanceWeight
	result.Status = domain.StatusForScore(result.OverallScore)
	result.Suggestions = contentSuggestions(&result)

	logger.Info("Content validation: %s (%.1f; grounding=%.0f structure=%.0f relevance=%.0f)",
		result.Status, result.OverallScore, groundingScore, structureScore, relevanceScore)
	return result
}

// checkStructure scores formatting: headings, length, lists and
// balanced code fences.
func checkStructure(content string) (float64, []domain.Issue) {
	var issues []domain.Issue
	score := 100.0

	if !strings.Contains(content, "#") {
		issues = append(issues, domain.Issue{
			Type:       domain.IssueWarning,
			Message:    "No headings found",
			Suggestion: "Add section headings for better organization",
		})
		score -= 10
	}

	lines := strings.Split(content, "\n")
	nonEmpty := 0
	hasList := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			nonEmpty++
		}
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") ||
			strings.HasPrefix(trimmed, "1.") {
			hasList = true
		}
	}

	if nonEmpty < 5 {
		issues = append(issues, domain.Issue{
			Type:       domain.IssueWarning,
			Message:    "Content seems too short",
			Suggestion: "Add more detail and explanations",
		})
		score -= 15
	}

	if !hasList {
		issues = append(issues, domain.Issue{
			Type:       domain.IssueInfo,
			Message:    "No lists found",
			Suggestion: "Consider using bullet points for key concepts",
		})
		score -= 5
	}

	if strings.Count(content, "```")%2 != 0 {
		issues = append(issues, domain.Issue{
			Type:       domain.IssueError,
			Message:    "Unclosed code block",
			Suggestion: "Close all code blocks with ```",
		})
		score -= 20
	}

	if score < 0 {
		score = 0
	}
	return score, issues
}

// checkRelevance asks the judge for a 0-100 topical relevance score.
// Judge failure yields a neutral 70 rather than failing validation.
func (v *ContentValidator) checkRelevance(ctx context.Context, content, topic string) (float64, []domain.Issue) {
	const neutral = 70.0
	if v.judge == nil {
		return neutral, nil
	}

	sample := content
	if len(sample) > relevanceSample {
		sample = sample[:relevanceSample]
	}

	score, err := v.judge.ScoreRelevance(ctx, sample, topic)
	if err != nil {
		logger.Warn("Relevance judge unavailable, using neutral score: %v", err)
		return neutral, nil
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	var issues []domain.Issue
	switch {
	case score < 50:
		issues = append(issues, domain.Issue{
			Type:       domain.IssueError,
			Message:    fmt.Sprintf("Content has low relevance to topic (%.0f%%)", score),
			Suggestion: "Regenerate with clearer focus on the topic",
		})
	case score < 70:
		issues = append(issues, domain.Issue{
			Type:       domain.IssueWarning,
			Message:    fmt.Sprintf("Content could be more focused on topic (%.0f%%)", score),
			Suggestion: "Consider adding more topic-specific information",
		})
	}
	return score, issues
}

// checkGrounding scores the citation density of course-material markers
// against retrieved evidence. Absent evidence is a different failure
// mode than ungrounded content, so it yields a fixed partial score.
func (v *ContentValidator) checkGrounding(ctx context.Context, content, topic, courseID string) (float64, []domain.Issue) {
	var evidence []domain.RetrievedResult
	if v.retriever != nil {
		evidence = v.retriever.Retrieve(ctx, topic, courseID, domain.DefaultSearchTopK, domain.RetrievalFilters{})
	}

	if len(evidence) == 0 {
		return 50, []domain.Issue{{
			Type:       domain.IssueWarning,
			Message:    "No course materials found for grounding check",
			Suggestion: "Content may not be based on course materials",
		}}
	}

	citations := countCourseCitations(content)
	switch {
	case citations == 0:
		return 60, []domain.Issue{{
			Type:       domain.IssueWarning,
			Message:    "No course material citations found",
			Suggestion: "Add [C#] citations to course materials",
		}}
	case citations < 2:
		return 80, []domain.Issue{{
			Type:       domain.IssueInfo,
			Message:    "Few course material citations",
			Suggestion: "Consider adding more references to course materials",
		}}
	default:
		return 100, nil
	}
}

var courseCitationPattern = regexp.MustCompile(`\[C\d+\]`)
var webCitationPattern = regexp.MustCompile(`\[W\d+\]`)

func countCourseCitations(content string) int {
	return len(courseCitationPattern.FindAllString(content, -1))
}

// checkWebCitations is a non-blocking advisory check over web markers
// and URLs. Untrusted domains and markers without URLs surface as
// issues only.
func checkWebCitations(content string) []domain.Issue {
	var issues []domain.Issue

	urls := urlPattern.FindAllStringSubmatch(content, -1)
	for _, match := range urls {
		host := strings.ToLower(strings.SplitN(match[1], "/", 2)[0])
		if !isTrustedDomain(host) {
			issues = append(issues, domain.Issue{
				Type:       domain.IssueInfo,
				Message:    fmt.Sprintf("Unverified source domain: %s", host),
				Suggestion: "Verify the credibility of this source",
			})
		}
	}

	webCitations := len(webCitationPattern.FindAllString(content, -1))
	if webCitations > 0 && len(urls) == 0 {
		issues = append(issues, domain.Issue{
			Type:       domain.IssueWarning,
			Message:    "Web citations without URLs",
			Suggestion: "Include source URLs for web citations",
		})
	}
	return issues
}

func isTrustedDomain(host string) bool {
	for _, trusted := range trustedDomains {
		if strings.Contains(host, trusted) {
			return true
		}
	}
	return false
}

// contentSuggestions derives improvement suggestions from the component
// scores.
func contentSuggestions(result *domain.ValidationResult) []string {
	var suggestions []string

	if result.ComponentScores["grounding"] < 70 {
		suggestions = append(suggestions, "Add more references to course materials")
	}
	if result.ComponentScores["structure"] < 70 {
		suggestions = append(suggestions, "Improve content structure with headings and lists")
	}
	if result.ComponentScores["relevance"] < 70 {
		suggestions = append(suggestions, "Focus more directly on the requested topic")
	}
	if result.OverallScore >= domain.ValidatedThreshold {
		suggestions = append(suggestions, "Content is well-validated and ready for use")
	}
	return suggestions
}
