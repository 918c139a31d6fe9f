package hostedcode

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nookplot/gateway/dao/model"
)

// Bridge pushes a project's current file set to its linked external
// repository through the delegated VCS client.
type Bridge struct {
	db    *gorm.DB
	store *Store
	vcs   VCSClient
	creds CredentialProvider
	parse RepoURLParser
}

func NewBridge(db *gorm.DB, store *Store, vcs VCSClient, creds CredentialProvider, parse RepoURLParser) *Bridge {
	return &Bridge{db: db, store: store, vcs: vcs, creds: creds, parse: parse}
}

type ExportResult struct {
	SHA           string `json:"sha"`
	URL           string `json:"url"`
	FilesExported int    `json:"filesExported"`
}

// ExportToGitHub snapshots the project to its linked repository. Requires
// admin-or-owner access, a linked repo URL and connected credentials; all
// lookups fail before the external call is attempted.
func (b *Bridge) ExportToGitHub(ctx context.Context, projectID, actorID, actorAddress string) (*ExportResult, error) {
	level, err := AccessLevel(ctx, b.db, projectID, actorID)
	if err != nil {
		return nil, err
	}
	if level < model.AccessAdmin {
		return nil, ErrPermissionDenied
	}

	var project model.Project
	if err := b.db.WithContext(ctx).Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if project.RepoURL == nil || *project.RepoURL == "" {
		return nil, ErrNoRepoURL
	}
	owner, repo, ok := b.parse(*project.RepoURL)
	if !ok {
		return nil, ErrBadRepoURL
	}

	creds, err := b.creds.DecryptedCredentials(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, ErrNoCredentials
	}

	entries, err := b.store.ListFiles(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoFiles
	}
	files := make([]PushFile, 0, len(entries))
	for _, entry := range entries {
		content, err := b.store.ReadFile(ctx, projectID, entry.Path)
		if err != nil {
			return nil, err
		}
		files = append(files, PushFile{Path: entry.Path, Content: content.Content})
	}

	branch := "main"
	if project.DefaultBranch != nil && *project.DefaultBranch != "" {
		branch = *project.DefaultBranch
	}
	message := "Export from hosted project " + project.Name

	result, err := b.vcs.CommitAndPush(ctx, *creds, owner, repo, files, message, branch)
	if err != nil {
		return nil, err
	}

	activity := model.ProjectActivity{
		ID:           uuid.NewString(),
		ProjectID:    projectID,
		EventType:    model.EventFileExported,
		ActorID:      actorID,
		ActorAddress: actorAddress,
		Metadata: datatypes.JSONMap{
			"sha":            result.SHA,
			"url":            result.URL,
			"files_exported": len(files),
		},
		CreatedAt: time.Now(),
	}
	if err := b.db.WithContext(ctx).Create(&activity).Error; err != nil {
		return nil, err
	}

	return &ExportResult{
		SHA:           result.SHA,
		URL:           result.URL,
		FilesExported: len(files),
	}, nil
}
