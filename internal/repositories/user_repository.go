package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"messagely/internal/models"
)

// UserRepository abstracts account persistence.
type UserRepository interface {
	Create(ctx context.Context, user models.RegisteredUser) (models.RegisteredUser, error)
	PasswordHash(ctx context.Context, username string) (string, error)
	UpdateLastLogin(ctx context.Context, username string) (models.LoginStamp, error)
	List(ctx context.Context) ([]models.UserSummary, error)
	Get(ctx context.Context, username string) (models.UserDetail, error)
	Exists(ctx context.Context, username string) (bool, error)
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a user whose Password is already hashed. join_at defaults to now.
func (r *UserRepo) Create(ctx context.Context, user models.RegisteredUser) (models.RegisteredUser, error) {
	var created models.RegisteredUser
	err := r.db.QueryRowxContext(ctx, `INSERT INTO users (username, password, first_name, last_name, phone)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING username, password, first_name, last_name, phone`,
		user.Username, user.Password, user.FirstName, user.LastName, user.Phone).StructScan(&created)
	if err != nil {
		if pqCode(err) == pqUniqueViolation {
			return models.RegisteredUser{}, ErrDuplicateUsername
		}
		if isInvalidText(err) {
			return models.RegisteredUser{}, ErrInvalidText
		}
		return models.RegisteredUser{}, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

// PasswordHash returns the stored credential for username.
func (r *UserRepo) PasswordHash(ctx context.Context, username string) (string, error) {
	var hash string
	err := r.db.GetContext(ctx, &hash, `SELECT password FROM users WHERE username=$1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if isInvalidText(err) {
		return "", ErrInvalidText
	}
	return hash, err
}

// UpdateLastLogin stamps last_login_at with the current time.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, username string) (models.LoginStamp, error) {
	var stamp models.LoginStamp
	err := r.db.GetContext(ctx, &stamp, `UPDATE users SET last_login_at = NOW() WHERE username=$1
        RETURNING username, last_login_at`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LoginStamp{}, ErrUserNotFound
	}
	return stamp, err
}

// List returns every user ordered by username.
func (r *UserRepo) List(ctx context.Context) ([]models.UserSummary, error) {
	users := []models.UserSummary{}
	err := r.db.SelectContext(ctx, &users, `SELECT username, first_name, last_name, phone FROM users ORDER BY username`)
	return users, err
}

// Get fetches a single user.
func (r *UserRepo) Get(ctx context.Context, username string) (models.UserDetail, error) {
	var user models.UserDetail
	err := r.db.GetContext(ctx, &user, `SELECT username, first_name, last_name, phone, join_at, last_login_at
        FROM users WHERE username=$1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserDetail{}, ErrUserNotFound
	}
	return user, err
}

// Exists reports whether username is registered.
func (r *UserRepo) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE username=$1)`, username)
	return exists, err
}
