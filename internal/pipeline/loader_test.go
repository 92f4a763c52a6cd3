package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSources_List(t *testing.T) {
	data := []byte(`
- chunkId: c1
  documentId: d1
  content: "Enrollment grew 12% in 2022."
  similarity: 0.91
  metadata:
    pageNumber: 3
    sectionTitle: Outcomes
    chunkIndex: 7
- chunkId: c2
  documentId: d1
  content: "Program staff completed training."
`)
	pool, err := ParseSources(data)
	require.NoError(t, err)
	require.Len(t, pool, 2)

	assert.Equal(t, "c1", pool[0].ChunkID)
	require.NotNil(t, pool[0].Similarity)
	assert.Equal(t, 0.91, *pool[0].Similarity)
	require.NotNil(t, pool[0].Metadata.PageNumber)
	assert.Equal(t, 3, *pool[0].Metadata.PageNumber)
	assert.Equal(t, "Outcomes", pool[0].Metadata.SectionTitle)
	assert.Nil(t, pool[1].Similarity)
}

func TestParseSources_MappingAndJSON(t *testing.T) {
	pool, err := ParseSources([]byte(`sources:
  - chunkId: c1
    content: text
`))
	require.NoError(t, err)
	require.Len(t, pool, 1)

	pool, err = ParseSources([]byte(`[{"chunkId": "j1", "documentId": "d", "content": "json body", "metadata": {"chunkIndex": 2}}]`))
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, "j1", pool[0].ChunkID)
	require.NotNil(t, pool[0].Metadata.ChunkIndex)
	assert.Equal(t, 2, *pool[0].Metadata.ChunkIndex)
}

func TestParseSources_Empty(t *testing.T) {
	pool, err := ParseSources([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, pool)
}

func TestParseSources_Invalid(t *testing.T) {
	_, err := ParseSources([]byte("- content: no id\n"))
	assert.ErrorIs(t, err, ErrMissingChunkID)

	_, err = ParseSources([]byte("- chunkId: a\n- chunkId: a\n"))
	assert.ErrorIs(t, err, ErrDuplicateChunkID)

	_, err = ParseSources([]byte("just a string"))
	assert.Error(t, err)
}

func TestLoadSourcesAndDraft(t *testing.T) {
	dir := t.TempDir()
	poolPath := filepath.Join(dir, "pool.yaml")
	require.NoError(t, os.WriteFile(poolPath, []byte("- chunkId: c1\n  content: hello\n"), 0o644))

	pool, err := LoadSources(poolPath)
	require.NoError(t, err)
	assert.Len(t, pool, 1)

	_, err = LoadSources(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	draftPath := filepath.Join(dir, "draft.md")
	require.NoError(t, os.WriteFile(draftPath, []byte("Body text."), 0o644))
	text, err := ReadDraft(draftPath)
	require.NoError(t, err)
	assert.Equal(t, "Body text.", text)
}
