package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/logger"
)

const chatSystemPrompt = `You are an AI learning assistant for a university course platform.
Your role is to help students understand course materials, answer questions, and provide explanations.

IMPORTANT GUIDELINES:
1. Base your answers primarily on the provided course materials
2. If course materials don't cover a topic well, use the web sources (if provided)
3. Always cite your sources using their markers ([C1] for course materials, [W1] for web sources)
4. Be educational, clear, and helpful
5. If you're not sure about something, say so
6. For code questions, provide working examples when possible

EVIDENCE:
%s`

// ChatConfig tunes the conversational pipeline.
type ChatConfig struct {
	SearchLimit   int
	MemorySoftCap int
	MemoryHardCap int
	MaxTokens     int
	Temperature   float64
}

func (c ChatConfig) withDefaults() ChatConfig {
	if c.SearchLimit <= 0 {
		c.SearchLimit = domain.DefaultSearchTopK
	}
	if c.MemorySoftCap <= 0 {
		c.MemorySoftCap = domain.DefaultMemorySoftCap
	}
	if c.MemoryHardCap <= c.MemorySoftCap {
		c.MemoryHardCap = domain.DefaultMemoryHardCap
	}
	return c
}

// ChatService runs the conversational pipeline: record the user turn,
// gather evidence through hybrid search, assemble a cited context and
// complete through the LLM. Each session owns a bounded conversation
// memory.
type ChatService struct {
	hybrid    *HybridSearchService
	assembler *ContextAssembler
	llm       driven.LLMService
	store     driven.MessageStore
	cfg       ChatConfig

	mu       sync.Mutex
	memories map[string]*ConversationMemory
}

// NewChatService wires the conversational pipeline together.
func NewChatService(
	hybrid *HybridSearchService,
	assembler *ContextAssembler,
	llm driven.LLMService,
	store driven.MessageStore,
	cfg ChatConfig,
) *ChatService {
	return &ChatService{
		hybrid:    hybrid,
		assembler: assembler,
		llm:       llm,
		store:     store,
		cfg:       cfg.withDefaults(),
		memories:  map[string]*ConversationMemory{},
	}
}

// SendMessage processes one user message and returns the complete
// assistant reply. The assistant message records the evidence sources
// and whether web search informed the answer.
func (s *ChatService) SendMessage(
	ctx context.Context, sessionID, courseID, content string, forceWeb *bool,
) (*domain.Message, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("chat: %w", domain.ErrLLMUnavailable)
	}

	turns, assembled, usedWeb, err := s.prepare(ctx, sessionID, courseID, content, forceWeb)
	if err != nil {
		return nil, err
	}

	reply, err := s.llm.Chat(ctx, turns, driven.ChatOptions{
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	return s.finish(ctx, sessionID, reply, assembled.Sources, usedWeb)
}

// StreamMessage processes one user message and streams the assistant
// reply. The returned channel relays content deltas and closes when the
// reply is complete. Cancelling ctx before the first delta arrives
// skips persistence entirely; once any content has been relayed the
// complete-so-far text is still persisted on cancellation.
func (s *ChatService) StreamMessage(
	ctx context.Context, sessionID, courseID, content string, forceWeb *bool,
) (<-chan driven.StreamDelta, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("chat: %w", domain.ErrLLMUnavailable)
	}

	turns, assembled, usedWeb, err := s.prepare(ctx, sessionID, courseID, content, forceWeb)
	if err != nil {
		return nil, err
	}

	upstream, err := s.llm.ChatStream(ctx, turns, driven.ChatOptions{
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("chat stream: %w", err)
	}

	out := make(chan driven.StreamDelta)
	go func() {
		defer close(out)
		var full strings.Builder

		flush := func() {
			if full.Len() == 0 {
				return
			}
			// Persistence must not be tied to the cancelled request
			// context.
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if _, err := s.finish(flushCtx, sessionID, full.String(), assembled.Sources, usedWeb); err != nil {
				logger.Warn("Failed to persist partial reply: %v", err)
			}
		}

		for {
			select {
			case <-ctx.Done():
				logger.Info("Stream cancelled after %d chars", full.Len())
				flush()
				out <- driven.StreamDelta{Err: fmt.Errorf("chat stream: %w", domain.ErrStreamCancelled)}
				return
			case delta, ok := <-upstream:
				if !ok {
					flush()
					// The upstream may close in response to
					// cancellation before our own ctx case fires.
					if ctx.Err() != nil {
						out <- driven.StreamDelta{Err: fmt.Errorf("chat stream: %w", domain.ErrStreamCancelled)}
					}
					return
				}
				if delta.Err != nil {
					flush()
					out <- delta
					return
				}
				full.WriteString(delta.Content)
				select {
				case out <- delta:
				case <-ctx.Done():
					logger.Info("Stream cancelled after %d chars", full.Len())
					flush()
					return
				}
			}
		}
	}()
	return out, nil
}

// History returns up to limit stored messages for the session.
func (s *ChatService) History(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	return s.store.Recent(ctx, sessionID, limit)
}

// ClearSession removes the session's stored messages and its in-memory
// conversation window.
func (s *ChatService) ClearSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.memories, sessionID)
	s.mu.Unlock()
	return s.store.ClearSession(ctx, sessionID)
}

// prepare records the user turn, runs retrieval and builds the prompt
// turns shared by the blocking and streaming paths.
func (s *ChatService) prepare(
	ctx context.Context, sessionID, courseID, content string, forceWeb *bool,
) ([]domain.Turn, domain.AssembledContext, bool, error) {
	userMsg := &domain.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.store.Append(ctx, userMsg); err != nil {
		return nil, domain.AssembledContext{}, false, fmt.Errorf("store user message: %w", err)
	}

	memory := s.sessionMemory(sessionID)
	window := memory.Window()
	memory.Append(domain.Turn{Role: domain.RoleUser, Content: content, Timestamp: userMsg.CreatedAt})

	result := s.hybrid.HybridSearch(ctx, content, courseID, domain.HybridOptions{
		Limit:    s.cfg.SearchLimit,
		ForceWeb: forceWeb,
	})
	assembled := s.assembler.Assemble(result.CourseResults, result.WebResults)

	turns := make([]domain.Turn, 0, len(window)+2)
	turns = append(turns, domain.Turn{
		Role:    domain.RoleSystem,
		Content: fmt.Sprintf(chatSystemPrompt, assembled.Text),
	})
	turns = append(turns, window...)
	turns = append(turns, domain.Turn{Role: domain.RoleUser, Content: content})
	return turns, assembled, result.UsedWeb, nil
}

// finish persists the assistant reply and updates the session memory.
func (s *ChatService) finish(
	ctx context.Context, sessionID, reply string, sources []domain.ContextSource, usedWeb bool,
) (*domain.Message, error) {
	msg := &domain.Message{
		ID:            uuid.NewString(),
		SessionID:     sessionID,
		Role:          domain.RoleAssistant,
		Content:       reply,
		Sources:       sources,
		UsedWebSearch: usedWeb,
		CreatedAt:     time.Now(),
	}
	if err := s.store.Append(ctx, msg); err != nil {
		return nil, fmt.Errorf("store assistant message: %w", err)
	}

	s.sessionMemory(sessionID).Append(domain.Turn{
		Role:      domain.RoleAssistant,
		Content:   reply,
		Timestamp: msg.CreatedAt,
	})
	return msg, nil
}

func (s *ChatService) sessionMemory(sessionID string) *ConversationMemory {
	s.mu.Lock()
	defer s.mu.Unlock()
	memory, ok := s.memories[sessionID]
	if !ok {
		memory = NewConversationMemory(s.cfg.MemorySoftCap, s.cfg.MemoryHardCap, nil)
		s.memories[sessionID] = memory
	}
	return memory
}
