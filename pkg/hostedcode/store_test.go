package hostedcode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFilesOrderedByPath(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t)

	_, err := engine.CommitFiles(ctx, &CommitRequest{
		ProjectID: "p1",
		Files: []CommitFile{
			{Path: "zz/last.txt", Content: strPtr("z\n")},
			{Path: "aa/first.txt", Content: strPtr("a\n")},
			{Path: "mm/middle.go", Content: strPtr("package mm\n")},
		},
		Message:       "seed",
		AuthorID:      "agent-1",
		AuthorAddress: "addr",
	})
	require.NoError(t, err)

	entries, err := store.ListFiles(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "aa/first.txt", entries[0].Path)
	assert.Equal(t, "mm/middle.go", entries[1].Path)
	assert.Equal(t, "zz/last.txt", entries[2].Path)

	// Listing rows carry metadata only; content comes from ReadFile.
	if assert.NotNil(t, entries[1].Language) {
		assert.Equal(t, "go", *entries[1].Language)
	}
	assert.Equal(t, int64(2), entries[0].Size)
	assert.NotEmpty(t, entries[0].SHA256)

	content, err := store.ReadFile(ctx, "p1", "mm/middle.go")
	require.NoError(t, err)
	assert.Equal(t, "package mm\n", content.Content)
}

func TestReadFileScopedToProject(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t)
	seedProject(t, engine.db, "p2", "owner-2")

	_, err := engine.CommitFiles(ctx, &CommitRequest{
		ProjectID:     "p1",
		Files:         []CommitFile{{Path: "shared-name.txt", Content: strPtr("p1 copy\n")}},
		Message:       "seed p1",
		AuthorID:      "agent-1",
		AuthorAddress: "addr",
	})
	require.NoError(t, err)

	_, err = store.ReadFile(ctx, "p2", "shared-name.txt")
	assert.ErrorIs(t, err, ErrFileNotFound)
}
