package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"marketplace-backend/internal/domains/user/model"
	"marketplace-backend/internal/infrastructure/database"
)

const userColumns = `id, name, email, username, password_hash, status, role, created_at`

type postgresUserRepository struct {
	db database.DBTX
}

func NewPostgresUserRepository(db database.DBTX) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.Username, u.PasswordHash, u.Status, u.Role, u.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			var pgErr *pgconn.PgError
			errors.As(err, &pgErr)
			if pgErr.ConstraintName == "users_username_key" {
				return model.ErrUsernameTaken
			}
			return model.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *postgresUserRepository) getOne(ctx context.Context, query, arg string) (*model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *postgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email)
}

func (r *postgresUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *postgresUserRepository) exists(ctx context.Context, query, arg string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

func (r *postgresUserRepository) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

func (r *postgresUserRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE users SET status = $2 WHERE id = $1 AND status <> $2`, id, status)
	if err != nil {
		return false, fmt.Errorf("failed to update user status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return false, fmt.Errorf("failed to update password: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, model.ErrUserHasListings
		}
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Username, &u.PasswordHash, &u.Status, &u.Role, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}
