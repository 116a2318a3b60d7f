package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/talksy/internal/common"
	"github.com/dmitrijs2005/talksy/internal/dbx"
	"github.com/dmitrijs2005/talksy/internal/server/models"
	"github.com/google/uuid"
)

// queries holds the dialect-specific statements. PostgreSQL binds $n,
// SQLite binds ?.
type queries struct {
	insert  string
	byEmail string
}

var postgresQueries = queries{
	insert: `INSERT INTO users (id, email, username, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
	byEmail: `SELECT id, email, username, password_hash, created_at FROM users
		 WHERE email = $1`,
}

var sqliteQueries = queries{
	insert: `INSERT INTO users (id, email, username, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
	byEmail: `SELECT id, email, username, password_hash, created_at FROM users
		 WHERE email = ?`,
}

// SQLRepository is a database/sql backed Repository.
type SQLRepository struct {
	db  dbx.DBTX
	q   queries
	now func() time.Time
}

// NewPostgresRepository returns a Repository for PostgreSQL (pgx stdlib driver).
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: postgresQueries, now: time.Now}
}

// NewSQLiteRepository returns a Repository for SQLite (modernc driver).
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: sqliteQueries, now: time.Now}
}

// Create inserts user, filling in ID and CreatedAt when they are empty.
func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now().UTC().Truncate(time.Microsecond)
	}

	_, err := r.db.ExecContext(ctx, r.q.insert,
		user.ID, user.Email, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetUserByEmail matches the email exactly as stored.
func (r *SQLRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, r.q.byEmail, email).
		Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
