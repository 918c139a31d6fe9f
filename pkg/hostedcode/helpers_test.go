package hostedcode

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nookplot/gateway/dao/model"
	"github.com/nookplot/gateway/dao/query"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "gateway.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, query.Migrate(db))
	return db
}

func seedProject(t *testing.T, db *gorm.DB, id, ownerID string) *model.Project {
	t.Helper()
	project := &model.Project{
		ID:        id,
		Name:      "proj-" + id,
		OwnerID:   ownerID,
		OwnerAddr: "addr-" + ownerID,
		Status:    "active",
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// stubVCS keeps the real path and secret checks and fakes the external push.
type stubVCS struct {
	*PatternScanner
	pushErr error
	pushed  []PushFile
	branch  string
}

func newStubVCS() *stubVCS {
	return &stubVCS{PatternScanner: NewPatternScanner()}
}

func (s *stubVCS) CommitAndPush(_ context.Context, _ Credentials, _, _ string,
	files []PushFile, _, branch string) (*PushResult, error) {
	if s.pushErr != nil {
		return nil, s.pushErr
	}
	s.pushed = files
	s.branch = branch
	return &PushResult{SHA: "abc123", URL: "https://example.test/commit/abc123"}, nil
}

type stubCreds struct {
	creds *Credentials
	err   error
}

func (s *stubCreds) DecryptedCredentials(_ context.Context, _ string) (*Credentials, error) {
	return s.creds, s.err
}

func strPtr(s string) *string { return &s }
