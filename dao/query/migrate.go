package query

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/nookplot/gateway/dao/model"
)

// Migrate applies the schema migrations. New migrations are appended with
// a monotonically increasing ID; existing entries are never edited.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "202602010001",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&model.Project{},
					&model.ProjectCollaborator{},
					&model.ProjectFile{},
					&model.FileCommit{},
					&model.FileCommitChange{},
					&model.CommitReview{},
					&model.CommitLog{},
					&model.ProjectActivity{},
					&model.ProjectTask{},
					&model.GithubCredential{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					"github_credentials",
					"project_tasks",
					"project_activities",
					"commit_logs",
					"commit_reviews",
					"file_commit_changes",
					"file_commits",
					"project_files",
					"project_collaborators",
					"projects",
				)
			},
		},
	})

	if err := m.Migrate(); err != nil {
		return err
	}
	klog.Info("schema migration complete")
	return nil
}
