// Package storage keeps scanned documents in a SQL database through gorm.
package storage

import (
	"context"
	"errors"
	"fmt"

	"scan-qa/pkg/config"
	"scan-qa/pkg/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultListLimit caps List when no limit is given
const DefaultListLimit = 50

// Repository stores documents and their classified lines
type Repository struct {
	db *gorm.DB
}

// Open connects to the configured database and migrates the schema
func Open(cfg config.DatabaseConfig) (*Repository, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, models.NewError(models.KindConfig, "open database", fmt.Errorf("unknown driver %q", cfg.Driver))
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, models.NewError(models.KindStorage, "open database", err)
	}

	repo := &Repository{db: db}
	if err := repo.AutoMigrate(); err != nil {
		return nil, err
	}
	return repo, nil
}

// AutoMigrate creates or updates the document tables
func (r *Repository) AutoMigrate() error {
	if err := r.db.AutoMigrate(&models.Document{}, &models.DocumentLine{}); err != nil {
		return models.NewError(models.KindStorage, "migrate", err)
	}
	return nil
}

// Create inserts doc together with its lines
func (r *Repository) Create(ctx context.Context, doc *models.Document) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return models.NewError(models.KindStorage, "create document", err)
	}
	return nil
}

// Get loads a document with its lines in reading order
func (r *Repository) Get(ctx context.Context, id uint) (*models.Document, error) {
	var doc models.Document
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&doc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewError(models.KindStorage, "get document", models.ErrDocumentNotFound)
	}
	if err != nil {
		return nil, models.NewError(models.KindStorage, "get document", err)
	}
	return &doc, nil
}

// List returns the newest documents first, without their lines
func (r *Repository) List(ctx context.Context, limit int) ([]models.Document, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var docs []models.Document
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&docs).Error
	if err != nil {
		return nil, models.NewError(models.KindStorage, "list documents", err)
	}
	return docs, nil
}

// Delete removes a document and its lines
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Document{}, id)
		if res.Error != nil {
			return models.NewError(models.KindStorage, "delete document", res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewError(models.KindStorage, "delete document", models.ErrDocumentNotFound)
		}
		if err := tx.Where("document_id = ?", id).Delete(&models.DocumentLine{}).Error; err != nil {
			return models.NewError(models.KindStorage, "delete document lines", err)
		}
		return nil
	})
}

// Close releases the underlying connection pool
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
