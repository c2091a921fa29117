// Package likes persists user-to-film like edges.
package likes

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/filmorate-backend/internal/repo"
	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
)

// Store is the like-edge surface used by the films service.
type Store interface {
	// Add reports whether a new edge was written; repeating a like is a no-op.
	Add(ctx context.Context, filmID, userID int64) (bool, error)
	// Remove reports whether an edge existed.
	Remove(ctx context.Context, filmID, userID int64) (bool, error)
	// CountByFilm returns like totals for every film with at least one like.
	CountByFilm(ctx context.Context) ([]models.LikeCount, error)
}

var _ Store = (*Repository)(nil)

// Repository manages like persistence.
type Repository struct {
	repo.Base
}

// NewRepository builds a likes repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Add(ctx context.Context, filmID, userID int64) (bool, error) {
	res := r.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Like{FilmID: filmID, UserID: userID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository) Remove(ctx context.Context, filmID, userID int64) (bool, error) {
	res := r.DB(ctx).
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository) CountByFilm(ctx context.Context) ([]models.LikeCount, error) {
	counts := []models.LikeCount{}
	err := r.DB(ctx).
		Model(&models.Like{}).
		Select("film_id, COUNT(*) AS like_count").
		Group("film_id").
		Order("film_id ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
