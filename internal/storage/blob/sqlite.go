package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type blobEntry struct {
	Key       string `gorm:"column:blob_key;primaryKey;size:191"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (blobEntry) TableName() string { return "console_blobs" }

// SQLite хранит значения в локальной базе sqlite через gorm.
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite открывает (или создаёт) файл базы и мигрирует таблицу.
func OpenSQLite(path string) (*SQLite, error) {
	const op = "blob.OpenSQLite"
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return NewSQLite(db)
}

// NewSQLite использует уже открытое соединение gorm.
func NewSQLite(db *gorm.DB) (*SQLite, error) {
	const op = "blob.NewSQLite"
	if err := db.AutoMigrate(&blobEntry{}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "blob.SQLite.Get"
	var entry blobEntry
	err := s.db.WithContext(ctx).Where("blob_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entry.Data, nil
}

func (s *SQLite) Put(ctx context.Context, key string, data []byte) error {
	const op = "blob.SQLite.Put"
	if err := validateKey(key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	entry := blobEntry{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blob_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	const op = "blob.SQLite.Delete"
	if err := s.db.WithContext(ctx).Where("blob_key = ?", key).Delete(&blobEntry{}).Error; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
