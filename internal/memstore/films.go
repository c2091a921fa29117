package memstore

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
	"github.com/angelmondragon/filmorate-backend/pkg/enums"
)

// Films is the film view of the store. Rows keep genre ids only; names for
// the rating and genres are filled from the enum catalogs on read.
type Films struct {
	s *Store
}

func (f *Films) Create(_ context.Context, film *models.Film) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	f.s.filmID++
	now := f.s.now()
	film.ID = f.s.filmID
	film.CreatedAt, film.UpdatedAt = now, now
	f.s.films[film.ID] = stripFilm(*film)
	return nil
}

func (f *Films) Update(_ context.Context, film *models.Film) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	current, ok := f.s.films[film.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	film.CreatedAt = current.CreatedAt
	film.UpdatedAt = f.s.now()
	f.s.films[film.ID] = stripFilm(*film)
	return nil
}

func (f *Films) FindByID(_ context.Context, id int64) (*models.Film, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	film, ok := f.s.films[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := withRefs(film)
	return &out, nil
}

func (f *Films) List(_ context.Context) ([]models.Film, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	out := make([]models.Film, 0, len(f.s.films))
	for _, id := range sortedIDs(f.s.films) {
		out = append(out, withRefs(f.s.films[id]))
	}
	return out, nil
}

// Delete drops the film with its likes.
func (f *Films) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.films[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for key := range f.s.likes {
		if key.filmID == id {
			delete(f.s.likes, key)
		}
	}
	delete(f.s.films, id)
	return nil
}

// stripFilm keeps the unique genre ids in ascending order and drops loaded refs.
func stripFilm(film models.Film) models.Film {
	seen := map[int64]struct{}{}
	genres := make([]models.Genre, 0, len(film.Genres))
	for _, g := range film.Genres {
		if _, dup := seen[g.ID]; dup {
			continue
		}
		seen[g.ID] = struct{}{}
		genres = append(genres, models.Genre{ID: g.ID})
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	film.Genres = genres
	film.Mpa = nil
	return film
}

func withRefs(film models.Film) models.Film {
	if rating, ok := enums.MpaRatingByID(film.MpaID); ok {
		film.Mpa = &models.Mpa{ID: film.MpaID, Name: rating.String()}
	}
	genres := make([]models.Genre, 0, len(film.Genres))
	for _, g := range film.Genres {
		name := ""
		if genre, ok := enums.GenreByID(g.ID); ok {
			name = genre.String()
		}
		genres = append(genres, models.Genre{ID: g.ID, Name: name})
	}
	film.Genres = genres
	return film
}
