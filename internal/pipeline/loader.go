package pipeline

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/groundcheck/internal/model"
)

var (
	// ErrMissingChunkID is returned when a pool entry has no chunkId
	ErrMissingChunkID = errors.New("source has no chunkId")
	// ErrDuplicateChunkID is returned when two pool entries share a chunkId
	ErrDuplicateChunkID = errors.New("duplicate chunkId")
)

// poolFile accepts either a bare list of sources or a {sources: [...]} document
type poolFile struct {
	Sources []model.CandidateSource `yaml:"sources"`
}

// LoadSources reads a candidate pool from YAML or JSON
func LoadSources(path string) ([]model.CandidateSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	pool, err := ParseSources(data)
	if err != nil {
		return nil, fmt.Errorf("parse sources %s: %w", path, err)
	}
	return pool, nil
}

// ParseSources decodes a candidate pool. JSON parses as YAML.
func ParseSources(data []byte) ([]model.CandidateSource, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	pool := []model.CandidateSource{}
	if len(root.Content) == 0 {
		return pool, nil
	}

	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&pool); err != nil {
			return nil, fmt.Errorf("decode sources: %w", err)
		}
	case yaml.MappingNode:
		var pf poolFile
		if err := doc.Decode(&pf); err != nil {
			return nil, fmt.Errorf("decode sources: %w", err)
		}
		if pf.Sources != nil {
			pool = pf.Sources
		}
	default:
		return nil, fmt.Errorf("decode sources: expected a list or a sources mapping")
	}

	seen := make(map[string]bool, len(pool))
	for i, src := range pool {
		if src.ChunkID == "" {
			return nil, fmt.Errorf("source %d: %w", i, ErrMissingChunkID)
		}
		if seen[src.ChunkID] {
			return nil, fmt.Errorf("source %d (%s): %w", i, src.ChunkID, ErrDuplicateChunkID)
		}
		seen[src.ChunkID] = true
	}

	return pool, nil
}

// ReadDraft reads a draft file
func ReadDraft(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read draft: %w", err)
	}
	return string(data), nil
}
