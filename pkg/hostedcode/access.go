package hostedcode

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nookplot/gateway/dao/model"
)

// AccessLevel resolves an actor's role rank on a project. It returns
// AccessNone when the project does not exist or the actor is neither the
// owner nor a recorded collaborator. Pure read, no side effects.
func AccessLevel(ctx context.Context, db *gorm.DB, projectID, actorID string) (model.AccessLevel, error) {
	var project model.Project
	err := db.WithContext(ctx).Select("id", "owner_id").
		Where("id = ?", projectID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.AccessNone, nil
		}
		return model.AccessNone, err
	}
	if project.OwnerID == actorID {
		return model.AccessOwner, nil
	}

	var collab model.ProjectCollaborator
	err = db.WithContext(ctx).
		Where("project_id = ? AND actor_id = ?", projectID, actorID).
		First(&collab).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.AccessNone, nil
		}
		return model.AccessNone, err
	}
	return collab.Role, nil
}
