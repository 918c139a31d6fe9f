package hostedcode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nookplot/gateway/dao/model"
)

func TestAccessLevel(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	seedProject(t, db, "p1", "owner-1")

	require.NoError(t, AddCollaborator(ctx, db, "p1", "editor-1", "addr-editor", model.AccessEditor))

	level, err := AccessLevel(ctx, db, "p1", "owner-1")
	require.NoError(t, err)
	assert.Equal(t, model.AccessOwner, level)

	level, err = AccessLevel(ctx, db, "p1", "editor-1")
	require.NoError(t, err)
	assert.Equal(t, model.AccessEditor, level)

	level, err = AccessLevel(ctx, db, "p1", "stranger")
	require.NoError(t, err)
	assert.Equal(t, model.AccessNone, level)

	level, err = AccessLevel(ctx, db, "missing", "owner-1")
	require.NoError(t, err)
	assert.Equal(t, model.AccessNone, level)
}

func TestAddCollaboratorUpsertsRole(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	seedProject(t, db, "p1", "owner-1")

	require.NoError(t, AddCollaborator(ctx, db, "p1", "a1", "addr-a1", model.AccessViewer))
	require.NoError(t, AddCollaborator(ctx, db, "p1", "a1", "addr-a1", model.AccessAdmin))

	var rows []model.ProjectCollaborator
	require.NoError(t, db.Where("project_id = ?", "p1").Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, model.AccessAdmin, rows[0].Role)

	require.NoError(t, RemoveCollaborator(ctx, db, "p1", "addr-a1"))
	level, err := AccessLevel(ctx, db, "p1", "a1")
	require.NoError(t, err)
	assert.Equal(t, model.AccessNone, level)
}

func TestAddCollaboratorRejectsBadRole(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	seedProject(t, db, "p1", "owner-1")

	// Owner rank lives on the project row, never on a collaborator row.
	err := AddCollaborator(ctx, db, "p1", "a1", "addr-a1", model.AccessOwner)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = AddCollaborator(ctx, db, "p1", "a1", "addr-a1", model.AccessNone)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = AddCollaborator(ctx, db, "missing", "a1", "addr-a1", model.AccessViewer)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
