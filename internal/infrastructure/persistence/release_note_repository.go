package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scentlab/crm-backend/internal/domain/catalog"
	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/infrastructure/persistence/models"
)

// GormReleaseNoteRepository implements ReleaseNoteRepository using GORM
type GormReleaseNoteRepository struct {
	db *gorm.DB
}

// NewGormReleaseNoteRepository creates a new GormReleaseNoteRepository
func NewGormReleaseNoteRepository(db *gorm.DB) *GormReleaseNoteRepository {
	return &GormReleaseNoteRepository{db: db}
}

// FindByID finds a release note by its ID
func (r *GormReleaseNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ReleaseNote, error) {
	var model models.ReleaseNoteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByVersion finds a release note by its version string
func (r *GormReleaseNoteRepository) FindByVersion(ctx context.Context, version string) (*catalog.ReleaseNote, error) {
	var model models.ReleaseNoteModel
	if err := r.db.WithContext(ctx).
		Where("release_version = ?", strings.TrimSpace(version)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all release notes matching the filter
func (r *GormReleaseNoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ReleaseNote, error) {
	var noteModels []models.ReleaseNoteModel
	query := r.db.WithContext(ctx).Model(&models.ReleaseNoteModel{})
	query = r.applyFilters(query, filter)
	query = applyPagination(query, filter, map[string]bool{
		"release_version": true,
		"created_at":      true,
	}, "created_at DESC")

	if err := query.Find(&noteModels).Error; err != nil {
		return nil, err
	}

	notes := make([]catalog.ReleaseNote, len(noteModels))
	for i, model := range noteModels {
		notes[i] = *model.ToDomain()
	}
	return notes, nil
}

// FindPublished lists only published notes
func (r *GormReleaseNoteRepository) FindPublished(ctx context.Context, filter shared.Filter) ([]catalog.ReleaseNote, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["is_published"] = true
	return r.FindAll(ctx, filter)
}

// Save creates or updates a release note
func (r *GormReleaseNoteRepository) Save(ctx context.Context, note *catalog.ReleaseNote) error {
	model := models.ReleaseNoteModelFromDomain(note)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a release note
func (r *GormReleaseNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReleaseNoteModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts release notes matching the filter
func (r *GormReleaseNoteRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ReleaseNoteModel{})
	query = r.applyFilters(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormReleaseNoteRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(release_version) LIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "is_published":
			query = query.Where("is_published = ?", value)
		case "is_published_to_partners":
			query = query.Where("is_published_to_partners = ?", value)
		}
	}
	return query
}

// Ensure GormReleaseNoteRepository implements ReleaseNoteRepository
var _ catalog.ReleaseNoteRepository = (*GormReleaseNoteRepository)(nil)
