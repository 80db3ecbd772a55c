package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"user-registry/internal/domain"
	"user-registry/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	password TEXT NOT NULL DEFAULT '',
	age INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const selectUser = `
SELECT id, first_name, last_name, email, phone, password, age
FROM users`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+` ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func (r *UserRepository) Add(ctx context.Context, user domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, first_name, last_name, email, phone, password, age, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		user.Password,
		user.Age,
		now,
		now,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return nil, domain.DuplicateID(user.ID)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update user: %w", err)
	}
	defer tx.Rollback()

	current, err := scanUser(tx.QueryRowContext(ctx, selectUser+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(id)
		}
		return nil, err
	}

	merged := current.Apply(patch)
	if _, err := tx.ExecContext(ctx, `
UPDATE users
SET first_name = ?, last_name = ?, email = ?, phone = ?, password = ?, age = ?, updated_at = ?
WHERE id = ?`,
		merged.FirstName,
		merged.LastName,
		merged.Email,
		merged.Phone,
		merged.Password,
		merged.Age,
		time.Now().UTC(),
		id,
	); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update user: %w", err)
	}
	return &merged, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user rows affected: %w", err)
	}
	if n == 0 {
		return domain.NotFound(id)
	}
	return nil
}

// scanUser returns sql.ErrNoRows unwrapped so callers can tell absence apart.
func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.Password,
		&user.Age,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
