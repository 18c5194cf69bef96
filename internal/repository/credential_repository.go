package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Credential is a login account in the identity table. Profiles in users
// are keyed by the same id.
type Credential struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
}

type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Create(ctx context.Context, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO account_credentials (email, password_hash)
		VALUES (?, ?)
		RETURNING id
	`, email, passwordHash).Scan(&id).Error
	if err != nil {
		if isDuplicate(err) {
			return uuid.Nil, ErrDuplicateEmail
		}
		return uuid.Nil, wrapStore(err)
	}
	return id, nil
}

func (r *CredentialRepository) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	var cred Credential
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, email, password_hash
		FROM account_credentials
		WHERE email = ?
		LIMIT 1
	`, email).Scan(&cred).Error
	if err != nil {
		return nil, wrapStore(err)
	}
	if cred.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	return &cred, nil
}

func (r *CredentialRepository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE account_credentials SET email = ? WHERE id = ?
	`, email, id)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return ErrDuplicateEmail
		}
		return wrapStore(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CredentialRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE account_credentials SET password_hash = ? WHERE id = ?
	`, passwordHash, id)
	if result.Error != nil {
		return wrapStore(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM account_credentials WHERE id = ?`, id)
	if result.Error != nil {
		return wrapStore(result.Error)
	}
	return nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(strings.ToLower(err.Error()), "duplicate key")
}
