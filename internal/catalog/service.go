package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/angelmondragon/filmorate-backend/internal/films"
	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/filmorate-backend/pkg/errors"
)

// Service exposes read-only catalog lookups.
type Service interface {
	ListMpa(ctx context.Context) ([]films.MpaDTO, error)
	GetMpa(ctx context.Context, id int64) (*films.MpaDTO, error)
	ListGenres(ctx context.Context) ([]films.GenreDTO, error)
	GetGenre(ctx context.Context, id int64) (*films.GenreDTO, error)
}

type service struct {
	store Store
}

// NewService builds a catalog service over the given store.
func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog store is required")
	}
	return &service{store: store}, nil
}

func (s *service) ListMpa(ctx context.Context) ([]films.MpaDTO, error) {
	list, err := s.store.ListMpa(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list mpa ratings")
	}
	out := make([]films.MpaDTO, 0, len(list))
	for _, m := range list {
		out = append(out, mpaDTO(m))
	}
	return out, nil
}

func (s *service) GetMpa(ctx context.Context, id int64) (*films.MpaDTO, error) {
	m, err := s.store.FindMpa(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "mpa rating", id)
	}
	dto := mpaDTO(*m)
	return &dto, nil
}

func (s *service) ListGenres(ctx context.Context) ([]films.GenreDTO, error) {
	list, err := s.store.ListGenres(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list genres")
	}
	out := make([]films.GenreDTO, 0, len(list))
	for _, g := range list {
		out = append(out, genreDTO(g))
	}
	return out, nil
}

func (s *service) GetGenre(ctx context.Context, id int64) (*films.GenreDTO, error) {
	g, err := s.store.FindGenre(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "genre", id)
	}
	dto := genreDTO(*g)
	return &dto, nil
}

func mpaDTO(m models.Mpa) films.MpaDTO {
	return films.MpaDTO{ID: m.ID, Name: m.Name}
}

func genreDTO(g models.Genre) films.GenreDTO {
	return films.GenreDTO{ID: g.ID, Name: g.Name}
}

func mapLookupError(err error, kind string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("%s %d not found", kind, id))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+kind)
}
