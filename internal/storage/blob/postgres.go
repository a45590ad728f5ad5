package blob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres хранит значения в таблице console_blobs (см. internal/migrations).
type Postgres struct {
	DB *sql.DB
}

// NewPostgres оборачивает открытое соединение, схема должна быть уже применена.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "blob.Postgres.Get"
	var data []byte
	err := p.DB.QueryRowContext(ctx, `SELECT data FROM console_blobs WHERE blob_key = $1`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

func (p *Postgres) Put(ctx context.Context, key string, data []byte) error {
	const op = "blob.Postgres.Put"
	if err := validateKey(key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO console_blobs (blob_key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (blob_key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	const op = "blob.Postgres.Delete"
	if _, err := p.DB.ExecContext(ctx, `DELETE FROM console_blobs WHERE blob_key = $1`, key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p *Postgres) Close() error {
	return p.DB.Close()
}
