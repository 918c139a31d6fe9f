package hostedcode

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nookplot/gateway/dao/model"
)

// AddCollaborator records or updates a non-owner actor's role rank on a
// project. Caller is responsible for the owner-only authorization check.
func AddCollaborator(ctx context.Context, db *gorm.DB, projectID, actorID, actorAddress string, role model.AccessLevel) error {
	if role < model.AccessViewer || role > model.AccessAdmin {
		return ErrPermissionDenied
	}
	var project model.Project
	if err := db.WithContext(ctx).Select("id").Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	collab := model.ProjectCollaborator{
		ProjectID:    projectID,
		ActorID:      actorID,
		ActorAddress: actorAddress,
		Role:         role,
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "actor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "actor_address"}),
	}).Create(&collab).Error
}

// RemoveCollaborator deletes the collaborator row if present.
func RemoveCollaborator(ctx context.Context, db *gorm.DB, projectID, actorAddress string) error {
	return db.WithContext(ctx).
		Where("project_id = ? AND actor_address = ?", projectID, actorAddress).
		Delete(&model.ProjectCollaborator{}).Error
}
