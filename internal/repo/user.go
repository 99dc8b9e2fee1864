package repo

import (
	"context"
	"fmt"

	"github.com/pkordes/travelbook/internal/domain"
)

// UserRepo defines the persistence operations for Users.
// Users are never updated or deleted.
type UserRepo interface {
	// Create inserts a new user and returns the persisted record.
	// Returns domain.ErrDuplicateEmail if the email is already registered.
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// CreateIfAbsent inserts u unless its email already exists.
	// Reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, u domain.User) (bool, error)

	// GetByEmail retrieves a user by exact email.
	// Returns domain.ErrNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// GetByID retrieves a user by primary key.
	// Returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.User, error)
}

// sqlUserRepo is the database/sql implementation of UserRepo.
type sqlUserRepo struct {
	c conn
}

// NewUserRepo constructs a UserRepo backed by the provided db handle.
func NewUserRepo(db db, d Dialect) UserRepo {
	return &sqlUserRepo{c: conn{db: db, dialect: d}}
}

const userColumns = `id, name, email, password_hash, is_admin, created_at`

func (r *sqlUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	q := `
		INSERT INTO users (name, email, password_hash, is_admin)
		VALUES (?, ?, ?, ?)
		RETURNING ` + userColumns

	result, err := scanUser(r.c.queryRow(ctx, q, u.Name, u.Email, u.PasswordHash, u.IsAdmin))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", domain.ErrDuplicateEmail)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

// CreateIfAbsent relies on the email unique constraint rather than a prior
// lookup, so concurrent initializations still insert at most one row.
func (r *sqlUserRepo) CreateIfAbsent(ctx context.Context, u domain.User) (bool, error) {
	const q = `
		INSERT INTO users (name, email, password_hash, is_admin)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (email) DO NOTHING`

	res, err := r.c.exec(ctx, q, u.Name, u.Email, u.PasswordHash, u.IsAdmin)
	if err != nil {
		return false, fmt.Errorf("repo.UserRepo.CreateIfAbsent: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("repo.UserRepo.CreateIfAbsent: rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *sqlUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	result, err := scanUser(r.c.queryRow(ctx, q, email))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return result, nil
}

func (r *sqlUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	result, err := scanUser(r.c.queryRow(ctx, q, id))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return domain.User{}, notFound(err)
	}
	return u, nil
}
