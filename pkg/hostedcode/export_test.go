package hostedcode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nookplot/gateway/dao/model"
)

func parseTestURL(url string) (string, string, bool) {
	if url == "https://github.com/acme/widgets" {
		return "acme", "widgets", true
	}
	return "", "", false
}

func exportFixture(t *testing.T) (*gorm.DB, *Engine, *stubVCS) {
	t.Helper()
	db := testDB(t)
	project := seedProject(t, db, "p1", "owner-1")
	project.RepoURL = strPtr("https://github.com/acme/widgets")
	project.DefaultBranch = strPtr("trunk")
	require.NoError(t, db.Save(project).Error)

	vcs := newStubVCS()
	engine := NewEngine(db, vcs, nil)
	_, err := engine.CommitFiles(context.Background(), &CommitRequest{
		ProjectID:     "p1",
		Files:         []CommitFile{{Path: "lib.go", Content: strPtr("package lib\n")}},
		Message:       "seed",
		AuthorID:      "owner-1",
		AuthorAddress: "addr-owner-1",
	})
	require.NoError(t, err)
	return db, engine, vcs
}

func TestExportToGitHub(t *testing.T) {
	ctx := context.Background()
	db, _, vcs := exportFixture(t)
	store := NewStore(db)
	creds := &stubCreds{creds: &Credentials{Token: "tok", Username: "octo"}}
	bridge := NewBridge(db, store, vcs, creds, parseTestURL)

	result, err := bridge.ExportToGitHub(ctx, "p1", "owner-1", "addr-owner-1")
	require.NoError(t, err)
	assert.Equal(t, "abc123", result.SHA)
	assert.Equal(t, 1, result.FilesExported)
	assert.Equal(t, "trunk", vcs.branch)
	require.Len(t, vcs.pushed, 1)
	assert.Equal(t, "lib.go", vcs.pushed[0].Path)
	assert.Equal(t, "package lib\n", vcs.pushed[0].Content)

	var activities []model.ProjectActivity
	require.NoError(t, db.Where("project_id = ? AND event_type = ?",
		"p1", model.EventFileExported).Find(&activities).Error)
	assert.Len(t, activities, 1)
}

func TestExportRequiresAdminAccess(t *testing.T) {
	ctx := context.Background()
	db, _, vcs := exportFixture(t)
	require.NoError(t, AddCollaborator(ctx, db, "p1", "editor-1", "addr-e", model.AccessEditor))
	bridge := NewBridge(db, NewStore(db), vcs,
		&stubCreds{creds: &Credentials{Token: "tok"}}, parseTestURL)

	_, err := bridge.ExportToGitHub(ctx, "p1", "editor-1", "addr-e")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = bridge.ExportToGitHub(ctx, "p1", "stranger", "addr-s")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExportPreconditionFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("no repo url", func(t *testing.T) {
		db := testDB(t)
		seedProject(t, db, "p1", "owner-1")
		bridge := NewBridge(db, NewStore(db), newStubVCS(),
			&stubCreds{creds: &Credentials{Token: "tok"}}, parseTestURL)
		_, err := bridge.ExportToGitHub(ctx, "p1", "owner-1", "addr")
		assert.ErrorIs(t, err, ErrNoRepoURL)
	})

	t.Run("unparseable repo url", func(t *testing.T) {
		db := testDB(t)
		project := seedProject(t, db, "p1", "owner-1")
		project.RepoURL = strPtr("not-a-repo")
		require.NoError(t, db.Save(project).Error)
		bridge := NewBridge(db, NewStore(db), newStubVCS(),
			&stubCreds{creds: &Credentials{Token: "tok"}}, parseTestURL)
		_, err := bridge.ExportToGitHub(ctx, "p1", "owner-1", "addr")
		assert.ErrorIs(t, err, ErrBadRepoURL)
	})

	t.Run("no connected credentials", func(t *testing.T) {
		db, _, vcs := exportFixture(t)
		bridge := NewBridge(db, NewStore(db), vcs, &stubCreds{}, parseTestURL)
		_, err := bridge.ExportToGitHub(ctx, "p1", "owner-1", "addr")
		assert.ErrorIs(t, err, ErrNoCredentials)
	})

	t.Run("empty project", func(t *testing.T) {
		db := testDB(t)
		project := seedProject(t, db, "p1", "owner-1")
		project.RepoURL = strPtr("https://github.com/acme/widgets")
		require.NoError(t, db.Save(project).Error)
		bridge := NewBridge(db, NewStore(db), newStubVCS(),
			&stubCreds{creds: &Credentials{Token: "tok"}}, parseTestURL)
		_, err := bridge.ExportToGitHub(ctx, "p1", "owner-1", "addr")
		assert.ErrorIs(t, err, ErrNoFiles)
	})
}
