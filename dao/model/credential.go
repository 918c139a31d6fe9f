package model

import "time"

// GithubCredential holds an actor's connected GitHub account. The token is
// sealed at rest; decryption happens only in the credential store.
type GithubCredential struct {
	ActorID     string `gorm:"primaryKey;type:varchar(64)"`
	Username    string `gorm:"type:varchar(128)"`
	SealedToken []byte `gorm:"type:bytea"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
