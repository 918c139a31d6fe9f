// Package credstore persists connected GitHub accounts with tokens sealed
// at rest. It implements the credential provider capability consumed by
// the export bridge.
package credstore

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
	"gorm.io/gorm"

	"github.com/nookplot/gateway/dao/model"
	"github.com/nookplot/gateway/pkg/hostedcode"
)

type Store struct {
	db  *gorm.DB
	key []byte
}

// New builds a store over a base64-encoded 32-byte sealing key.
func New(db *gorm.DB, encodedKey string) (*Store, error) {
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("decode credential key: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("credential key must be %d bytes", chacha20poly1305.KeySize)
	}
	return &Store{db: db, key: key}, nil
}

// SaveToken seals and upserts an actor's personal access token.
func (s *Store) SaveToken(ctx context.Context, actorID, username, token string) error {
	sealed, err := s.seal([]byte(token))
	if err != nil {
		return err
	}
	cred := model.GithubCredential{
		ActorID:     actorID,
		Username:    username,
		SealedToken: sealed,
		UpdatedAt:   time.Now(),
	}
	return s.db.WithContext(ctx).Save(&cred).Error
}

// DecryptedCredentials implements hostedcode.CredentialProvider. A nil
// result means the actor has no connected account.
func (s *Store) DecryptedCredentials(ctx context.Context, actorID string) (*hostedcode.Credentials, error) {
	var cred model.GithubCredential
	err := s.db.WithContext(ctx).Where("actor_id = ?", actorID).First(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	token, err := s.open(cred.SealedToken)
	if err != nil {
		return nil, fmt.Errorf("unseal token for %s: %w", actorID, err)
	}
	return &hostedcode.Credentials{Token: string(token), Username: cred.Username}, nil
}

// Delete removes an actor's connected account.
func (s *Store) Delete(ctx context.Context, actorID string) error {
	return s.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Delete(&model.GithubCredential{}).Error
}

// seal prepends the random nonce to the ciphertext.
func (s *Store) seal(plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *Store) open(sealed []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("sealed token too short")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, nil)
}
