package memstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
	"github.com/angelmondragon/filmorate-backend/pkg/enums"
)

// Catalog serves the reference lists straight from the enum catalogs.
type Catalog struct{}

func (Catalog) ListMpa(context.Context) ([]models.Mpa, error) {
	out := []models.Mpa{}
	for _, m := range enums.MpaRatings() {
		out = append(out, models.Mpa{ID: m.ID(), Name: m.String()})
	}
	return out, nil
}

func (Catalog) FindMpa(_ context.Context, id int64) (*models.Mpa, error) {
	m, ok := enums.MpaRatingByID(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Mpa{ID: id, Name: m.String()}, nil
}

func (Catalog) ListGenres(context.Context) ([]models.Genre, error) {
	out := []models.Genre{}
	for _, g := range enums.Genres() {
		out = append(out, models.Genre{ID: g.ID(), Name: g.String()})
	}
	return out, nil
}

func (Catalog) FindGenre(_ context.Context, id int64) (*models.Genre, error) {
	g, ok := enums.GenreByID(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Genre{ID: id, Name: g.String()}, nil
}
