package credstore

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nookplot/gateway/dao/model"
)

var testKey = base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "creds.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.GithubCredential{}))

	store, err := New(db, testKey)
	require.NoError(t, err)
	return store
}

func TestNewRejectsBadKeys(t *testing.T) {
	_, err := New(nil, "not base64!!")
	assert.Error(t, err)

	short := base64.StdEncoding.EncodeToString([]byte("too short"))
	_, err = New(nil, short)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	require.NoError(t, store.SaveToken(ctx, "actor-1", "octocat", "ghp_secret_token_value"))

	// Sealed at rest: the raw row never contains the plaintext.
	var row model.GithubCredential
	require.NoError(t, store.db.Where("actor_id = ?", "actor-1").First(&row).Error)
	assert.NotContains(t, string(row.SealedToken), "ghp_secret_token_value")

	creds, err := store.DecryptedCredentials(ctx, "actor-1")
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "ghp_secret_token_value", creds.Token)
	assert.Equal(t, "octocat", creds.Username)

	// Saving again replaces the token for the same actor.
	require.NoError(t, store.SaveToken(ctx, "actor-1", "octocat", "ghp_rotated"))
	creds, err = store.DecryptedCredentials(ctx, "actor-1")
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "ghp_rotated", creds.Token)
}

func TestMissingCredentialsAreNil(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	creds, err := store.DecryptedCredentials(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	require.NoError(t, store.SaveToken(ctx, "actor-1", "octocat", "tok"))
	require.NoError(t, store.Delete(ctx, "actor-1"))

	creds, err := store.DecryptedCredentials(ctx, "actor-1")
	require.NoError(t, err)
	assert.Nil(t, creds)
}
