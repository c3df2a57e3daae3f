package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/logger"
)

// Summarizer condenses a run of conversation turns into one summary
// string. It is injectable so callers can plug in an LLM-backed
// implementation; the default is a deterministic digest.
type Summarizer func(turns []domain.Turn) string

// ConversationMemory keeps a bounded rolling window over one
// conversation. Up to the soft cap turns are kept verbatim. Once the
// total exceeds the hard cap, everything older than the soft cap is
// collapsed into a single summary turn. Re-collapsing folds the
// existing summary into the new one, so the memory never holds more
// than one summary turn.
type ConversationMemory struct {
	mu        sync.Mutex
	summary   *domain.Turn
	turns     []domain.Turn
	softCap   int
	hardCap   int
	summarize Summarizer
}

// NewConversationMemory creates a memory with the given caps. A nil
// summarizer falls back to a deterministic digest; non-positive caps
// fall back to the defaults.
func NewConversationMemory(softCap, hardCap int, summarize Summarizer) *ConversationMemory {
	if softCap <= 0 {
		softCap = domain.DefaultMemorySoftCap
	}
	if hardCap <= softCap {
		hardCap = domain.DefaultMemoryHardCap
	}
	if summarize == nil {
		summarize = digestSummary
	}
	return &ConversationMemory{
		softCap:   softCap,
		hardCap:   hardCap,
		summarize: summarize,
	}
}

// Append records one turn and collapses overflow when the hard cap is
// exceeded.
func (m *ConversationMemory) Append(turn domain.Turn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.turns = append(m.turns, turn)
	if m.total() > m.hardCap {
		m.collapse()
	}
}

// Window returns the current conversation window: the summary turn (if
// one exists) followed by the most recent turns up to the soft cap.
func (m *ConversationMemory) Window() []domain.Turn {
	m.mu.Lock()
	defer m.mu.Unlock()

	recent := m.turns
	if len(recent) > m.softCap {
		recent = recent[len(recent)-m.softCap:]
	}

	window := make([]domain.Turn, 0, len(recent)+1)
	if m.summary != nil {
		window = append(window, *m.summary)
	}
	window = append(window, recent...)
	return window
}

// Len reports the number of stored turns, counting an existing summary
// as one.
func (m *ConversationMemory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total()
}

// Clear drops all stored turns and any summary.
func (m *ConversationMemory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = nil
	m.summary = nil
}

func (m *ConversationMemory) total() int {
	n := len(m.turns)
	if m.summary != nil {
		n++
	}
	return n
}

// collapse folds everything older than the soft cap, plus any prior
// summary, into one fresh summary turn. Callers hold the lock.
func (m *ConversationMemory) collapse() {
	keep := m.softCap
	if keep > len(m.turns) {
		keep = len(m.turns)
	}
	overflow := m.turns[:len(m.turns)-keep]
	if len(overflow) == 0 && m.summary == nil {
		return
	}

	toSummarize := make([]domain.Turn, 0, len(overflow)+1)
	if m.summary != nil {
		toSummarize = append(toSummarize, *m.summary)
	}
	toSummarize = append(toSummarize, overflow...)

	summary := domain.Turn{
		Role:      domain.RoleAssistant,
		Content:   m.summarize(toSummarize),
		Timestamp: time.Now(),
		Summary:   true,
	}
	m.summary = &summary

	retained := make([]domain.Turn, keep)
	copy(retained, m.turns[len(m.turns)-keep:])
	m.turns = retained

	logger.Debug("Collapsed %d turn(s) into conversation summary", len(toSummarize))
}

// digestSummary is the fallback summarizer: a compact per-turn digest
// with long contents clipped.
func digestSummary(turns []domain.Turn) string {
	var b strings.Builder
	b.WriteString("Earlier in this conversation: ")
	for i, t := range turns {
		if i > 0 {
			b.WriteString(" ")
		}
		content := strings.TrimSpace(t.Content)
		if len(content) > 120 {
			content = content[:120] + "..."
		}
		if t.Summary {
			b.WriteString(content)
			continue
		}
		b.WriteString(fmt.Sprintf("%s said: %s.", t.Role, content))
	}
	return b.String()
}
