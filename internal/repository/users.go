package repository

import (
	"context"
	"database/sql"

	"carebook/internal/database"
	"carebook/internal/models"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, nid, contact_number, role, created_at
		FROM users
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.NID,
		&user.ContactNumber,
		&user.Role,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, nid, contact_number, role, created_at
		FROM users
		WHERE email = $1`

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.NID,
		&user.ContactNumber,
		&user.Role,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return user, err
}

// UpsertByEmail syncs an identity-gateway principal into the store. Existing
// rows keep their name and role; a fresh row gets the default user role.
func (r *UserRepository) UpsertByEmail(ctx context.Context, email, name string) (*models.User, error) {
	user := &models.User{}
	query := `
		INSERT INTO users (name, email, role)
		VALUES ($1, $2, 'user')
		ON CONFLICT (email) DO UPDATE SET name = users.name
		RETURNING id, name, email, nid, contact_number, role, created_at`

	err := r.db.QueryRowContext(ctx, query, name, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.NID,
		&user.ContactNumber,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateRole grants or revokes the admin role for a user
func (r *UserRepository) UpdateRole(ctx context.Context, email, role string) (bool, error) {
	query := `UPDATE users SET role = $1 WHERE email = $2`

	result, err := r.db.ExecContext(ctx, query, role, email)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
