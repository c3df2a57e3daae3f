package services

import (
	"fmt"
	"time"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
)

// Config keys recognized by LoadSettings. Keys use dot notation and
// map to TOML tables in the config file.
const (
	keyChunkSize          = "chunking.size"
	keyChunkOverlap       = "chunking.overlap"
	keySearchTopK         = "search.top_k"
	keyRelevanceThreshold = "search.relevance_threshold"
	keyWebCacheTTLHours   = "web.cache_ttl_hours"
	keyWebRateLimit       = "web.rate_limit_per_minute"
	keyWebResultLimit     = "web.result_limit"
	keyContextBudget      = "generation.context_budget"
	keyMemorySoftCap      = "memory.soft_cap"
	keyMemoryHardCap      = "memory.hard_cap"
	keyMaxTokens          = "generation.max_tokens"
	keyTemperature        = "generation.temperature"
)

// LoadSettings reads pipeline settings from the config store, applying
// the deployment defaults for absent keys, and validates the result.
func LoadSettings(store driven.ConfigStore) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if store == nil {
		return settings, nil
	}

	if v := store.GetInt(keyChunkSize); v > 0 {
		settings.ChunkSize = v
	}
	if _, ok := store.Get(keyChunkOverlap); ok {
		settings.ChunkOverlap = store.GetInt(keyChunkOverlap)
	}
	if v := store.GetInt(keySearchTopK); v > 0 {
		settings.SearchTopK = v
	}
	if _, ok := store.Get(keyRelevanceThreshold); ok {
		settings.RelevanceThreshold = store.GetFloat(keyRelevanceThreshold)
	}
	if v := store.GetInt(keyWebCacheTTLHours); v > 0 {
		settings.WebCacheTTL = time.Duration(v) * time.Hour
	}
	if v := store.GetInt(keyWebRateLimit); v > 0 {
		settings.WebRateLimit = v
	}
	if v := store.GetInt(keyWebResultLimit); v > 0 {
		settings.WebResultLimit = v
	}
	if v := store.GetInt(keyContextBudget); v > 0 {
		settings.ContextBudget = v
	}
	if v := store.GetInt(keyMemorySoftCap); v > 0 {
		settings.MemorySoftCap = v
	}
	if v := store.GetInt(keyMemoryHardCap); v > 0 {
		settings.MemoryHardCap = v
	}
	if v := store.GetInt(keyMaxTokens); v > 0 {
		settings.MaxGenerationTokens = v
	}
	if _, ok := store.Get(keyTemperature); ok {
		settings.GenerationTemperature = store.GetFloat(keyTemperature)
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("settings from %s: %w", store.Path(), err)
	}
	return settings, nil
}
