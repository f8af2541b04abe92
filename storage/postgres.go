package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// PostgresStore implements Store on top of Postgres through gorm.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore opens the database and optionally migrates the
// schema.
func NewPostgresStore(dsn string, autoMigrate bool) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if autoMigrate {
		if err := db.AutoMigrate(&ProjectRecord{}, &ShareRecord{}); err != nil {
			return nil, fmt.Errorf("migrate schema: %w", err)
		}
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) SaveProject(ctx context.Context, rec *ProjectRecord) error {
	return s.db.WithContext(ctx).Save(rec).Error
}

func (s *PostgresStore) GetProject(ctx context.Context, id string) (*ProjectRecord, error) {
	var rec ProjectRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *PostgresStore) ListProjects(ctx context.Context) ([]ProjectRecord, error) {
	var recs []ProjectRecord
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *PostgresStore) DeleteProject(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&ProjectRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CreateShare(ctx context.Context, rec *ShareRecord) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *PostgresStore) GetShare(ctx context.Context, id string) (*ShareRecord, error) {
	var rec ShareRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
