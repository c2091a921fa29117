package films

import (
	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
	"github.com/angelmondragon/filmorate-backend/pkg/types"
)

// MpaDTO references an MPA rating by id; name is filled on reads.
type MpaDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// GenreDTO references a genre by id; name is filled on reads.
type GenreDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// FilmDTO is the transport shape of a film.
type FilmDTO struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ReleaseDate types.Date `json:"releaseDate"`
	Duration    int        `json:"duration"`
	Mpa         MpaDTO     `json:"mpa"`
	Genres      []GenreDTO `json:"genres"`
}

// CreateFilmInput carries the fields accepted when adding a film.
type CreateFilmInput struct {
	Name        string
	Description string
	ReleaseDate types.Date
	Duration    int
	MpaID       int64
	GenreIDs    []int64
}

// UpdateFilmInput replaces every mutable field, genres included.
type UpdateFilmInput struct {
	ID int64
	CreateFilmInput
}

func FromModel(f *models.Film) *FilmDTO {
	if f == nil {
		return nil
	}
	dto := &FilmDTO{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: types.NewDate(f.ReleaseDate),
		Duration:    f.Duration,
		Mpa:         MpaDTO{ID: f.MpaID},
		Genres:      make([]GenreDTO, 0, len(f.Genres)),
	}
	if f.Mpa != nil {
		dto.Mpa.Name = f.Mpa.Name
	}
	for _, g := range f.Genres {
		dto.Genres = append(dto.Genres, GenreDTO{ID: g.ID, Name: g.Name})
	}
	return dto
}

func FromModels(list []models.Film) []FilmDTO {
	out := make([]FilmDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

func (c CreateFilmInput) toModel() *models.Film {
	film := &models.Film{
		Name:        c.Name,
		Description: c.Description,
		ReleaseDate: c.ReleaseDate.Time,
		Duration:    c.Duration,
		MpaID:       c.MpaID,
		Genres:      make([]models.Genre, 0, len(c.GenreIDs)),
	}
	for _, id := range c.GenreIDs {
		film.Genres = append(film.Genres, models.Genre{ID: id})
	}
	return film
}
