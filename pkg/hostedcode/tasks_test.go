package hostedcode

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nookplot/gateway/dao/model"
)

func TestTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	seedProject(t, db, "p1", "owner-1")
	tasks := NewTasks(db)

	task, err := tasks.Create(ctx, &TaskRequest{
		ProjectID:      "p1",
		Title:          "write docs",
		CreatedBy:      "agent-1",
		CreatorAddress: "addr-1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TaskOpen, task.Status)
	assert.Equal(t, "medium", task.Priority)

	updated, err := tasks.UpdateStatus(ctx, "p1", task.ID, model.TaskInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.TaskInProgress, updated.Status)

	fetched, err := tasks.Get(ctx, "p1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskInProgress, fetched.Status)

	_, err = tasks.Get(ctx, "p1", "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskIdsDoNotResolveAcrossProjects(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	seedProject(t, db, "p1", "owner-1")
	seedProject(t, db, "p2", "owner-2")
	tasks := NewTasks(db)

	task, err := tasks.Create(ctx, &TaskRequest{
		ProjectID:      "p1",
		Title:          "stays in p1",
		CreatedBy:      "agent-1",
		CreatorAddress: "addr-1",
	})
	require.NoError(t, err)

	_, err = tasks.Get(ctx, "p2", task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	_, err = tasks.UpdateStatus(ctx, "p2", task.ID, model.TaskCancelled)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	// The foreign-path attempt changed nothing.
	kept, err := tasks.Get(ctx, "p1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskOpen, kept.Status)
}

func TestTaskListFilter(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	seedProject(t, db, "p1", "owner-1")
	tasks := NewTasks(db)

	open, err := tasks.Create(ctx, &TaskRequest{
		ProjectID: "p1", Title: "open one", CreatedBy: "a", CreatorAddress: "x",
	})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	done, err := tasks.Create(ctx, &TaskRequest{
		ProjectID: "p1", Title: "done one", CreatedBy: "a", CreatorAddress: "x",
	})
	require.NoError(t, err)
	_, err = tasks.UpdateStatus(ctx, "p1", done.ID, model.TaskCompleted)
	require.NoError(t, err)

	all, err := tasks.List(ctx, "p1", nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, done.ID, all[0].ID) // newest first

	status := model.TaskOpen
	onlyOpen, err := tasks.List(ctx, "p1", &status)
	require.NoError(t, err)
	require.Len(t, onlyOpen, 1)
	assert.Equal(t, open.ID, onlyOpen[0].ID)
}
