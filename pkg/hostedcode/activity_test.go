package hostedcode

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nookplot/gateway/dao/model"
)

func TestActivityFeeds(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t)
	seedProject(t, engine.db, "p2", "owner-2")
	feed := NewFeed(engine.db)

	for i, projectID := range []string{"p1", "p1", "p2"} {
		_, err := engine.CommitFiles(ctx, &CommitRequest{
			ProjectID:     projectID,
			Files:         []CommitFile{{Path: fmt.Sprintf("f%d.txt", i), Content: strPtr("x")}},
			Message:       fmt.Sprintf("commit %d", i),
			AuthorID:      "agent-1",
			AuthorAddress: "addr",
		})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	events, err := feed.ProjectActivity(ctx, "p1", 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, model.EventFileCommitted, events[0].EventType)
	// Newest first.
	assert.Equal(t, "commit 1", events[0].Metadata["message"])

	global, err := feed.GlobalActivity(ctx, 0)
	require.NoError(t, err)
	require.Len(t, global, 3)
	assert.Equal(t, "p2", global[0].ProjectID)

	limited, err := feed.GlobalActivity(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
