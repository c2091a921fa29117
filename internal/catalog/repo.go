// Package catalog serves the fixed MPA rating and genre reference lists.
package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/filmorate-backend/internal/repo"
	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
)

// Store reads the seeded reference tables. Unknown ids are reported as
// gorm.ErrRecordNotFound.
type Store interface {
	ListMpa(ctx context.Context) ([]models.Mpa, error)
	FindMpa(ctx context.Context, id int64) (*models.Mpa, error)
	ListGenres(ctx context.Context) ([]models.Genre, error)
	FindGenre(ctx context.Context, id int64) (*models.Genre, error)
}

var _ Store = (*Repository)(nil)

// Repository reads the mpa_ratings and genres tables.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) ListMpa(ctx context.Context) ([]models.Mpa, error) {
	out := []models.Mpa{}
	if err := r.DB(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) FindMpa(ctx context.Context, id int64) (*models.Mpa, error) {
	var m models.Mpa
	if err := r.DB(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) ListGenres(ctx context.Context) ([]models.Genre, error) {
	out := []models.Genre{}
	if err := r.DB(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) FindGenre(ctx context.Context, id int64) (*models.Genre, error) {
	var g models.Genre
	if err := r.DB(ctx).First(&g, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}
