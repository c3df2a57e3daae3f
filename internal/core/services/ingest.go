package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/logger"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/processing/chunker"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/processing/codeparse"
)

// codeFileTypes maps file extensions to the language used for
// structure-aware chunking.
var codeFileTypes = map[string]string{
	"py":   "python",
	"js":   "javascript",
	"ts":   "typescript",
	"java": "java",
	"c":    "c",
	"cpp":  "cpp",
	"go":   "go",
	"rs":   "rust",
}

// IngestService runs the write path: chunk a material, embed the
// chunks and index them under the material's course scope. Code
// materials are chunked along declaration boundaries and annotated
// with their extracted structure.
type IngestService struct {
	embedding driven.EmbeddingService
	index     driven.VectorIndex
	chunkCfg  chunker.Config
}

// NewIngestService creates the ingestion service.
func NewIngestService(embedding driven.EmbeddingService, index driven.VectorIndex, chunkCfg chunker.Config) *IngestService {
	return &IngestService{
		embedding: embedding,
		index:     index,
		chunkCfg:  chunkCfg,
	}
}

// IngestMaterial chunks, embeds and indexes one material. It returns
// the number of chunks indexed. Re-ingesting a material replaces its
// chunks.
func (s *IngestService) IngestMaterial(ctx context.Context, material *domain.Material) (int, error) {
	if strings.TrimSpace(material.Content) == "" {
		return 0, fmt.Errorf("material %q has no content: %w", material.Title, domain.ErrInvalidInput)
	}
	if material.ID == "" {
		material.ID = uuid.NewString()
		material.CreatedAt = time.Now()
	}
	material.UpdatedAt = time.Now()
	if material.Language == "" {
		material.Language = codeFileTypes[strings.ToLower(material.FileType)]
	}

	logger.Section("Ingestion")
	logger.Info("Ingesting %q (%s, %d chars)", material.Title, material.FileType, len(material.Content))

	chunks, err := s.chunkMaterial(material)
	if err != nil {
		return 0, fmt.Errorf("chunk material %q: %w", material.Title, err)
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := s.embedding.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed material %q: %w", material.Title, err)
	}
	for i := range chunks {
		chunks[i].ID = uuid.NewString()
		chunks[i].MaterialID = material.ID
		chunks[i].Embedding = vectors[i]
	}

	// Replace semantics: stale chunks of a re-ingested material must
	// not survive alongside the new ones.
	if err := s.index.DeleteByMaterial(ctx, material.ID); err != nil {
		return 0, fmt.Errorf("clear stale chunks of %q: %w", material.Title, err)
	}
	if err := s.index.Add(ctx, material.CourseID, chunks); err != nil {
		return 0, fmt.Errorf("index material %q: %w", material.Title, err)
	}

	logger.Info("Indexed %d chunk(s) for %q", len(chunks), material.Title)
	return len(chunks), nil
}

// DeleteMaterial removes a material's chunks from the index. Material
// deletion cascades to its chunks.
func (s *IngestService) DeleteMaterial(ctx context.Context, materialID string) error {
	if err := s.index.DeleteByMaterial(ctx, materialID); err != nil {
		return fmt.Errorf("delete material %s: %w", materialID, err)
	}
	logger.Info("Deleted chunks of material %s", materialID)
	return nil
}

// chunkMaterial picks the chunking strategy by material kind and stamps
// the retrieval metadata every chunk carries.
func (s *IngestService) chunkMaterial(material *domain.Material) ([]domain.Chunk, error) {
	metadata := map[string]any{
		"title":     material.Title,
		"file_type": material.FileType,
		"category":  material.Category,
	}
	for k, v := range material.Metadata {
		metadata[k] = v
	}

	var chunks []domain.Chunk
	var err error
	if material.IsCode() {
		structure := codeparse.Parse(material.Content, material.Language)
		if len(structure.Functions) > 0 {
			metadata["functions"] = strings.Join(structure.Functions, ",")
		}
		if len(structure.Classes) > 0 {
			metadata["classes"] = strings.Join(structure.Classes, ",")
		}
		if len(structure.Imports) > 0 {
			metadata["imports"] = strings.Join(structure.Imports, ",")
		}
		chunks, err = chunker.ChunkCode(material.Content, material.Language, s.chunkCfg, metadata)
	} else {
		chunks, err = chunker.Chunk(material.Content, s.chunkCfg, metadata)
	}
	if err != nil {
		return nil, err
	}

	for i := range chunks {
		chunks[i].Metadata["chunk_index"] = chunks[i].Index
	}
	return chunks, nil
}
