package model

import (
	"time"

	"gorm.io/datatypes"
)

// ProjectActivity is the append-only event log. Rows are never updated;
// the retention sweeper is the only deleter.
type ProjectActivity struct {
	ID           string            `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ProjectID    string            `gorm:"type:varchar(64);index" json:"projectId"`
	EventType    EventType         `gorm:"type:varchar(32)" json:"eventType"`
	ActorID      string            `gorm:"type:varchar(64)" json:"actorId"`
	ActorAddress string            `gorm:"type:varchar(64)" json:"actorAddress"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt    time.Time         `gorm:"index" json:"createdAt"`
}
