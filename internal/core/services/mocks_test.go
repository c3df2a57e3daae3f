package services

import (
	"context"
	"sync"
	"time"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
type mockEmbeddingService struct {
	vector   []float32
	embedErr error
	calls    int
}

func (m *mockEmbeddingService) Embed(_ context.Context, _ string) ([]float32, error) {
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if m.vector == nil {
		return []float32{0.1, 0.2, 0.3}, nil
	}
	return m.vector, nil
}

func (m *mockEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i], _ = m.Embed(ctx, texts[i])
	}
	return vectors, nil
}

func (m *mockEmbeddingService) Dimensions() int   { return 3 }
func (m *mockEmbeddingService) ModelName() string { return "mock-embedder" }
func (m *mockEmbeddingService) Close() error      { return nil }

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	hits      []driven.VectorHit
	searchErr error
	addErr    error
	deleteErr error

	added   []domain.Chunk
	deleted []string
	lastK   int
}

func (m *mockVectorIndex) Add(_ context.Context, _ string, chunks []domain.Chunk) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.added = append(m.added, chunks...)
	return nil
}

func (m *mockVectorIndex) DeleteByMaterial(_ context.Context, materialID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, materialID)
	return nil
}

func (m *mockVectorIndex) SimilaritySearch(_ context.Context, _ []float32, _ string, k int, _ float64) ([]driven.VectorHit, error) {
	m.lastK = k
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockVectorIndex) Close() error { return nil }

// mockWebProvider implements driven.WebSearchProvider for testing.
type mockWebProvider struct {
	response  domain.WebSearchResponse
	searchErr error
	calls     int
}

func (m *mockWebProvider) Search(_ context.Context, _ string, _ int, _ string) (domain.WebSearchResponse, error) {
	m.calls++
	if m.searchErr != nil {
		return domain.WebSearchResponse{}, m.searchErr
	}
	return m.response, nil
}

func (m *mockWebProvider) Close() error { return nil }

// mockCacheStore implements driven.CacheStore in memory.
type mockCacheStore struct {
	mu        sync.Mutex
	entries   map[string]*domain.WebSearchEntry
	getErr    error
	upsertErr error
	touchErr  error
}

func newMockCacheStore() *mockCacheStore {
	return &mockCacheStore{entries: map[string]*domain.WebSearchEntry{}}
}

func cacheKey(queryKey, courseID string) string { return queryKey + "|" + courseID }

func (m *mockCacheStore) Get(_ context.Context, queryKey, courseID string) (*domain.WebSearchEntry, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[cacheKey(queryKey, courseID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *entry
	return &clone, nil
}

func (m *mockCacheStore) Upsert(_ context.Context, entry *domain.WebSearchEntry) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *entry
	m.entries[cacheKey(entry.QueryKey, entry.CourseID)] = &clone
	return nil
}

func (m *mockCacheStore) Touch(_ context.Context, id string) error {
	if m.touchErr != nil {
		return m.touchErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.entries {
		if entry.ID == id {
			entry.HitCount++
			entry.LastUsedAt = time.Now()
		}
	}
	return nil
}

func (m *mockCacheStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for key, entry := range m.entries {
		if now.After(entry.ExpiresAt) {
			delete(m.entries, key)
			n++
		}
	}
	return n, nil
}

func (m *mockCacheStore) Invalidate(_ context.Context, queryKey, courseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, cacheKey(queryKey, courseID))
	return nil
}

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	reply          string
	chatErr        error
	streamDeltas   []string
	streamErr      error
	relevance      float64
	relevanceErr   error
	streamYieldGap time.Duration
	chatCalls      int
}

func (m *mockLLM) Chat(_ context.Context, _ []domain.Turn, _ driven.ChatOptions) (string, error) {
	m.chatCalls++
	if m.chatErr != nil {
		return "", m.chatErr
	}
	return m.reply, nil
}

func (m *mockLLM) ChatStream(ctx context.Context, _ []domain.Turn, _ driven.ChatOptions) (<-chan driven.StreamDelta, error) {
	if m.chatErr != nil {
		return nil, m.chatErr
	}
	out := make(chan driven.StreamDelta)
	go func() {
		defer close(out)
		for _, delta := range m.streamDeltas {
			if m.streamYieldGap > 0 {
				select {
				case <-time.After(m.streamYieldGap):
				case <-ctx.Done():
					return
				}
			}
			select {
			case out <- driven.StreamDelta{Content: delta}:
			case <-ctx.Done():
				return
			}
		}
		if m.streamErr != nil {
			select {
			case out <- driven.StreamDelta{Err: m.streamErr}:
			case <-ctx.Done():
			}
		}
	}()
	return out, nil
}

func (m *mockLLM) ScoreRelevance(_ context.Context, _, _ string) (float64, error) {
	if m.relevanceErr != nil {
		return 0, m.relevanceErr
	}
	return m.relevance, nil
}

func (m *mockLLM) ModelName() string { return "mock-llm" }
func (m *mockLLM) Close() error      { return nil }

// mockMessageStore implements driven.MessageStore in memory.
type mockMessageStore struct {
	mu        sync.Mutex
	messages  []domain.Message
	appendErr error
}

func (m *mockMessageStore) Append(_ context.Context, msg *domain.Message) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *mockMessageStore) Recent(_ context.Context, sessionID string, limit int) ([]domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Message
	for _, msg := range m.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *mockMessageStore) ClearSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.messages[:0]
	for _, msg := range m.messages {
		if msg.SessionID != sessionID {
			kept = append(kept, msg)
		}
	}
	m.messages = kept
	return nil
}

func (m *mockMessageStore) bySession(sessionID string) []domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Message
	for _, msg := range m.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	return out
}

// mockGenerationStore implements driven.GenerationStore in memory.
type mockGenerationStore struct {
	mu      sync.Mutex
	saved   []domain.Generation
	saveErr error
}

func (m *mockGenerationStore) Save(_ context.Context, gen *domain.Generation) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, *gen)
	return nil
}

func (m *mockGenerationStore) Get(_ context.Context, id string) (*domain.Generation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.saved {
		if m.saved[i].ID == id {
			clone := m.saved[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockGenerationStore) ListByCourse(_ context.Context, courseID string, limit int) ([]domain.Generation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Generation
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].CourseID == courseID {
			out = append(out, m.saved[i])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// mockCodeRunner implements driven.CodeRunner for testing.
type mockCodeRunner struct {
	supported bool
	result    driven.ExecutionResult
	runErr    error
	ran       bool
}

func (m *mockCodeRunner) Supports(_ string) bool { return m.supported }

func (m *mockCodeRunner) Run(_ context.Context, _, _ string) (driven.ExecutionResult, error) {
	m.ran = true
	if m.runErr != nil {
		return driven.ExecutionResult{}, m.runErr
	}
	return m.result, nil
}

// Interface conformance.
var (
	_ driven.EmbeddingService  = (*mockEmbeddingService)(nil)
	_ driven.VectorIndex       = (*mockVectorIndex)(nil)
	_ driven.WebSearchProvider = (*mockWebProvider)(nil)
	_ driven.CacheStore        = (*mockCacheStore)(nil)
	_ driven.LLMService        = (*mockLLM)(nil)
	_ driven.MessageStore      = (*mockMessageStore)(nil)
	_ driven.GenerationStore   = (*mockGenerationStore)(nil)
	_ driven.CodeRunner        = (*mockCodeRunner)(nil)
)
