package repositories

import (
	"context"

	"gorm.io/gorm"

	"tunitour/internal/models/db_models"
)

type SchemaPatchRepository interface {
	// EnsureModel creates or updates the table for a declared model.
	EnsureModel(ctx context.Context, model interface{}) error
	RecordRun(ctx context.Context, run *db_models.SchemaPatchRun) error
	ListRuns(ctx context.Context, patch string, limit int) ([]db_models.SchemaPatchRun, error)
}

type schemaPatchRepository struct {
	db *gorm.DB
}

func NewSchemaPatchRepository(db *gorm.DB) SchemaPatchRepository {
	return &schemaPatchRepository{db: db}
}

func (r *schemaPatchRepository) EnsureModel(ctx context.Context, model interface{}) error {
	return r.db.WithContext(ctx).AutoMigrate(model)
}

func (r *schemaPatchRepository) RecordRun(ctx context.Context, run *db_models.SchemaPatchRun) error {
	db := r.db.WithContext(ctx)
	if !db.Migrator().HasTable(&db_models.SchemaPatchRun{}) {
		if err := db.AutoMigrate(&db_models.SchemaPatchRun{}); err != nil {
			return err
		}
	}
	return db.Create(run).Error
}

// ListRuns is empty until the first run has been recorded.
func (r *schemaPatchRepository) ListRuns(ctx context.Context, patch string, limit int) ([]db_models.SchemaPatchRun, error) {
	runs := make([]db_models.SchemaPatchRun, 0)
	db := r.db.WithContext(ctx)
	if !db.Migrator().HasTable(&db_models.SchemaPatchRun{}) {
		return runs, nil
	}
	q := db.Order("created_at DESC")
	if patch != "" {
		q = q.Where("patch = ?", patch)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&runs).Error
	return runs, err
}
