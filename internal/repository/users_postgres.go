package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
)

type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

func (r *UserPostgres) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (user_id, email, password_hash, first_name, last_name, role, is_active, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW())`

	_, err := r.db.ExecContext(ctx, query,
		user.UserID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Role)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserPostgres) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, `WHERE email = $1`, email)
}

func (r *UserPostgres) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getUser(ctx, `WHERE user_id = $1`, id)
}

func (r *UserPostgres) getUser(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	query := `SELECT user_id, email, password_hash, first_name, last_name, role, is_active, created_at
	          FROM users ` + where

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.UserID, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.Role, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
