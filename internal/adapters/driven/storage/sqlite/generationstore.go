package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
)

// generationStore implements driven.GenerationStore.
type generationStore struct {
	store *Store
}

var _ driven.GenerationStore = (*generationStore)(nil)

// Save stores a generation record.
func (g *generationStore) Save(ctx context.Context, gen *domain.Generation) error {
	sourcesJSON := jsonNull
	if gen.Sources != nil {
		data, err := json.Marshal(gen.Sources)
		if err != nil {
			return fmt.Errorf("marshalling sources: %w", err)
		}
		sourcesJSON = string(data)
	}

	validationJSON := jsonNull
	if gen.Validation != nil {
		data, err := json.Marshal(gen.Validation)
		if err != nil {
			return fmt.Errorf("marshalling validation: %w", err)
		}
		validationJSON = string(data)
	}

	if gen.CreatedAt.IsZero() {
		gen.CreatedAt = time.Now().UTC()
	}

	_, err := g.store.db.ExecContext(ctx, `
		INSERT INTO generations (id, course_id, kind, topic, language, content, sources, used_web, source_mix_ratio, validation, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			sources = excluded.sources,
			used_web = excluded.used_web,
			source_mix_ratio = excluded.source_mix_ratio,
			validation = excluded.validation,
			note = excluded.note
	`, gen.ID, gen.CourseID, gen.Kind, gen.Topic, gen.Language, gen.Content,
		sourcesJSON, gen.UsedWebSearch, gen.SourceMixRatio, validationJSON, gen.Note, gen.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving generation: %w", err)
	}
	return nil
}

// Get returns a generation by ID, or domain.ErrNotFound.
func (g *generationStore) Get(ctx context.Context, id string) (*domain.Generation, error) {
	row := g.store.db.QueryRowContext(ctx, `
		SELECT id, course_id, kind, topic, language, content, sources, used_web, source_mix_ratio, validation, note, created_at
		FROM generations WHERE id = ?
	`, id)

	gen, err := scanGeneration(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return gen, nil
}

// ListByCourse returns up to limit generations for a course, newest
// first.
func (g *generationStore) ListByCourse(ctx context.Context, courseID string, limit int) ([]domain.Generation, error) {
	rows, err := g.store.db.QueryContext(ctx, `
		SELECT id, course_id, kind, topic, language, content, sources, used_web, source_mix_ratio, validation, note, created_at
		FROM generations WHERE course_id = ?
		ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, courseID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying generations: %w", err)
	}
	defer rows.Close()

	var generations []domain.Generation
	for rows.Next() {
		gen, err := scanGeneration(rows.Scan)
		if err != nil {
			return nil, err
		}
		generations = append(generations, *gen)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating generations: %w", err)
	}
	return generations, nil
}

// scanGeneration reads one generation row through the given scan
// function.
func scanGeneration(scan func(dest ...any) error) (*domain.Generation, error) {
	var gen domain.Generation
	var sourcesJSON, validationJSON string
	if err := scan(&gen.ID, &gen.CourseID, &gen.Kind, &gen.Topic, &gen.Language, &gen.Content,
		&sourcesJSON, &gen.UsedWebSearch, &gen.SourceMixRatio, &validationJSON, &gen.Note, &gen.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning generation: %w", err)
	}

	if sourcesJSON != jsonNull {
		if err := json.Unmarshal([]byte(sourcesJSON), &gen.Sources); err != nil {
			return nil, fmt.Errorf("unmarshaling sources: %w", err)
		}
	}
	if validationJSON != jsonNull {
		gen.Validation = &domain.ValidationResult{}
		if err := json.Unmarshal([]byte(validationJSON), gen.Validation); err != nil {
			return nil, fmt.Errorf("unmarshaling validation: %w", err)
		}
	}
	return &gen, nil
}
