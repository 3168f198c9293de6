package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tenerify/tenerify/internal/domain"
)

// pq error code for unique constraint violations.
const uniqueViolation = "23505"

// UserStorage persists user accounts in PostgreSQL.
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// CreateUser inserts a new account. A concurrent registration with the same
// email loses the race on the unique index and surfaces as ErrDuplicateEmail.
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	query := `
	INSERT INTO users (email, full_name, hashed_password, is_active, is_admin, language)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		user.Email, user.FullName, user.HashedPassword,
		user.IsActive, user.IsAdmin, user.Language,
	).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			s.logger.Warn("duplicate email on registration", "email", user.Email)
			return domain.ErrDuplicateEmail
		}
		s.logger.Error("failed to insert user", "email", user.Email, "error", err)
		return fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info("user created successfully",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetUserByID returns the user with the given id or domain.ErrNotFound.
func (s *UserStorage) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to get user by id", "user_id", id, "error", err)
		return nil, fmt.Errorf("select user by id: %w", err)
	}
	return &user, nil
}

// GetUserByEmail returns the user with the given email or domain.ErrNotFound.
// Emails compare case-sensitively, exactly as stored.
func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to get user by email", "error", err)
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return &user, nil
}
