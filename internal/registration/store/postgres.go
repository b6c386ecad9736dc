package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"examreg/internal/registration/models"
)

// PostgresStore persists records in the registrations table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, record *models.Record) (models.RecordID, error) {
	if record == nil {
		return "", ErrNilRecord
	}
	payload, err := json.Marshal(record.Payload)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}

	id := uuid.New()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO registrations (id, transaction_id, full_name, email, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, record.TransactionID, record.Payload.FullName(), record.Payload.Email(), string(payload), createdAt(record))
	if err != nil {
		return "", fmt.Errorf("insert registration: %w", describePgError(err))
	}
	return models.RecordID(id.String()), nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id models.RecordID) (*models.Record, error) {
	parsed, err := uuid.Parse(string(id))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", id, ErrNotFound)
	}

	var (
		r       models.Record
		rawID   uuid.UUID
		payload []byte
	)
	err = s.db.QueryRowContext(ctx, `
		SELECT id, transaction_id, payload, created_at
		FROM registrations
		WHERE id = $1
	`, parsed).Scan(&rawID, &r.TransactionID, &payload, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("find %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	if err := json.Unmarshal(payload, &r.Payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	r.ID = models.RecordID(rawID.String())
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

// describePgError keeps the SQLSTATE in the wrapped message so logs show the engine's reason.
func describePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s (sqlstate %s): %w", pgErr.Message, pgErr.Code, err)
	}
	return err
}
