package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type collectionRow struct {
	Name      string         `gorm:"primaryKey;size:64"`
	Data      datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (collectionRow) TableName() string {
	return "collections"
}

// PostgresBackend stores one row per collection. A multi-document Write runs
// in one SQL transaction.
type PostgresBackend struct {
	db *gorm.DB
}

func NewPostgresBackend(ctx context.Context, dsn string, collections []string) (*PostgresBackend, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return newPostgresBackend(ctx, db, collections)
}

func newPostgresBackend(ctx context.Context, db *gorm.DB, collections []string) (*PostgresBackend, error) {
	if err := db.WithContext(ctx).AutoMigrate(&collectionRow{}); err != nil {
		return nil, fmt.Errorf("migrate collections: %w", err)
	}

	for _, c := range collections {
		row := collectionRow{Name: c, Data: datatypes.JSON(emptyCollection)}
		err := db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&row).Error
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", c, err)
		}
	}

	return &PostgresBackend{db: db}, nil
}

func (b *PostgresBackend) Read(ctx context.Context, collection string) ([]byte, error) {
	var row collectionRow
	err := b.db.WithContext(ctx).First(&row, "name = ?", collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("read %s: %w", collection, ErrMissingCollection)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	return []byte(row.Data), nil
}

func (b *PostgresBackend) Write(ctx context.Context, docs ...Document) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range docs {
			row := collectionRow{
				Name:      d.Collection,
				Data:      datatypes.JSON(d.Data),
				UpdatedAt: time.Now(),
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return fmt.Errorf("write %s: %w", d.Collection, err)
			}
		}
		return nil
	})
}

func (b *PostgresBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
