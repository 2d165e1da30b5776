package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/expensio/expensio/internal/domain/errors"
	"github.com/expensio/expensio/internal/domain/model"
	"github.com/expensio/expensio/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage uses; tests substitute a
// mock through newPgxPool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type expenditureRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Expenditures() repository.ExpenditureRepository {
	return &expenditureRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS expenditures (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            description VARCHAR(191) NOT NULL,
            value DOUBLE PRECISION NOT NULL,
            date TIMESTAMPTZ NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_expenditures_user ON expenditures(user_id, date DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Email = email
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE email=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- ExpenditureRepository implementation ---

func (r *expenditureRepository) Create(ctx context.Context, userID int64, description string, value float64, date time.Time) (*model.Expenditure, error) {
	const query = `INSERT INTO expenditures (user_id, description, value, date)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, created_at, updated_at`
	var e model.Expenditure
	err := r.storage.pool.QueryRow(ctx, query, userID, description, value, date).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.UserID = userID
	e.Description = description
	e.Value = value
	e.Date = date
	return &e, nil
}

func (r *expenditureRepository) GetByID(ctx context.Context, id int64) (*model.Expenditure, error) {
	const query = `SELECT id, user_id, description, value, date, created_at, updated_at
                   FROM expenditures WHERE id=$1`
	var e model.Expenditure
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&e.ID, &e.UserID, &e.Description, &e.Value, &e.Date, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *expenditureRepository) ListByUser(ctx context.Context, userID int64) ([]model.Expenditure, error) {
	const query = `SELECT id, user_id, description, value, date, created_at, updated_at
                   FROM expenditures WHERE user_id=$1 ORDER BY date DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Expenditure
	for rows.Next() {
		var e model.Expenditure
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Value, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update mutates description/value only when the row belongs to userID. The
// owner filter and the not-found/forbidden probe run in one transaction so a
// foreign row is never touched.
func (r *expenditureRepository) Update(ctx context.Context, id, userID int64, update repository.ExpenditureUpdate) (*model.Expenditure, error) {
	const query = `UPDATE expenditures
                   SET description = COALESCE($3, description),
                       value = COALESCE($4, value),
                       updated_at = NOW()
                   WHERE id=$1 AND user_id=$2
                   RETURNING id, user_id, description, value, date, created_at, updated_at`

	var e model.Expenditure
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query, id, userID, update.Description, update.Value).
			Scan(&e.ID, &e.UserID, &e.Description, &e.Value, &e.Date, &e.CreatedAt, &e.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return r.classifyMiss(ctx, tx, id)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes the row only when it belongs to userID, with the same
// disambiguation as Update.
func (r *expenditureRepository) Delete(ctx context.Context, id, userID int64) error {
	const query = `DELETE FROM expenditures WHERE id=$1 AND user_id=$2`

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, id, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return r.classifyMiss(ctx, tx, id)
		}
		return nil
	})
}

// classifyMiss distinguishes a missing expenditure from one owned by another
// user after an owner-filtered statement matched nothing.
func (r *expenditureRepository) classifyMiss(ctx context.Context, tx pgx.Tx, id int64) error {
	const query = `SELECT user_id FROM expenditures WHERE id=$1`
	var ownerID int64
	err := tx.QueryRow(ctx, query, id).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	if err != nil {
		return err
	}
	return domainErrors.ErrForbidden
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
