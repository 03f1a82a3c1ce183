package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// Credential is a stored principal. PasswordHash is a bcrypt hash.
type Credential struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CredentialRepository interface {
	FindByUsername(ctx context.Context, username string) (*Credential, error)
	Create(ctx context.Context, credential *Credential) error
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}

type credentialRepository struct {
	db *sql.DB
}

func NewCredentialRepository(db *sql.DB) CredentialRepository {
	return &credentialRepository{
		db: db,
	}
}

func (r *credentialRepository) FindByUsername(ctx context.Context, username string) (*Credential, error) {
	query := `
		SELECT id, username, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	var credential Credential
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&credential.ID,
		&credential.Username,
		&credential.PasswordHash,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not query user %q: %w", username, err)
	}
	return &credential, nil
}

func (r *credentialRepository) Create(ctx context.Context, credential *Credential) error {
	query := `
		INSERT INTO users (id, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
	`
	_, err := r.db.ExecContext(ctx, query, credential.ID, credential.Username, credential.PasswordHash, credential.CreatedAt)
	if err != nil {
		return fmt.Errorf("could not insert user %q: %w", credential.Username, err)
	}
	credential.UpdatedAt = credential.CreatedAt
	return nil
}

func (r *credentialRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1,
			updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("could not update password hash: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not update password hash: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}
