// Package blob реализует хранилища сериализованных снимков "ключ -> байты".
// Хранилище консоли держит всё состояние таблиц под одним ключом,
// а сессию под отдельным, поэтому каждому драйверу достаточно трёх операций.
package blob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/pandda-console/internal/config"
	"github.com/magabrotheeeer/pandda-console/internal/migrations"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotExist возвращается, если под ключом ничего не сохранено.
var ErrNotExist = errors.New("blob: key does not exist")

// Идентификаторы поддерживаемых драйверов.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Backend хранит непрозрачные байты под строковыми ключами.
type Backend interface {
	// Get возвращает сохранённые данные или ErrNotExist.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put целиком перезаписывает значение ключа.
	Put(ctx context.Context, key string, data []byte) error
	// Delete удаляет ключ, отсутствие ключа ошибкой не считается.
	Delete(ctx context.Context, key string) error
	// Close освобождает соединения драйвера.
	Close() error
}

// New создаёт драйвер по настройкам хранилища.
func New(ctx context.Context, cfg *config.Config) (Backend, error) {
	const op = "blob.New"

	driver := cfg.Storage.Driver
	if driver == "" {
		driver = DriverMemory
	}

	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		return NewFile(cfg.Storage.FileDir)
	case DriverRedis:
		return NewRedis(ctx, cfg.RedisConnection)
	case DriverPostgres:
		if cfg.Storage.PostgresDSN == "" {
			return nil, fmt.Errorf("%s: postgres driver requires dsn", op)
		}
		db, err := sql.Open("pgx", cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = migrations.Run(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return NewPostgres(db), nil
	case DriverSQLite:
		return OpenSQLite(cfg.Storage.SQLitePath)
	default:
		return nil, fmt.Errorf("%s: unsupported storage driver: %s", op, driver)
	}
}

func validateKey(key string) error {
	if key == "" {
		return errors.New("blob: empty key")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("blob: invalid key %q", key)
	}
	return nil
}
