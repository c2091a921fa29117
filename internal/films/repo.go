package films

import (
	"context"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/filmorate-backend/internal/repo"
	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
)

// Store is the persistence surface of the films service. Missing rows are
// reported as gorm.ErrRecordNotFound. Reads return films with Mpa and Genres
// populated, genres ordered by id.
type Store interface {
	Create(ctx context.Context, film *models.Film) error
	Update(ctx context.Context, film *models.Film) error
	FindByID(ctx context.Context, id int64) (*models.Film, error)
	List(ctx context.Context) ([]models.Film, error)
	Delete(ctx context.Context, id int64) error
}

var _ Store = (*Repository)(nil)

// Repository manages film persistence.
type Repository struct {
	repo.Base
}

// NewRepository builds a films repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts the film and its genre links in one transaction.
func (r *Repository) Create(ctx context.Context, film *models.Film) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(film).Error; err != nil {
			return err
		}
		return writeGenres(tx, film.ID, film.Genres)
	})
}

// Update overwrites the film columns and replaces its genre set.
func (r *Repository) Update(ctx context.Context, film *models.Film) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&models.Film{}).
			Where("id = ?", film.ID).
			Updates(map[string]any{
				"name":         film.Name,
				"description":  film.Description,
				"release_date": film.ReleaseDate,
				"duration":     film.Duration,
				"mpa_id":       film.MpaID,
			})
		if err := repo.RequireAffected(res); err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", film.ID).Delete(&models.FilmGenre{}).Error; err != nil {
			return err
		}
		return writeGenres(tx, film.ID, film.Genres)
	})
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Film, error) {
	var film models.Film
	err := r.withRefs(ctx).First(&film, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	sortGenres(&film)
	return &film, nil
}

// List returns every film ordered by id.
func (r *Repository) List(ctx context.Context) ([]models.Film, error) {
	films := []models.Film{}
	if err := r.withRefs(ctx).Order("id ASC").Find(&films).Error; err != nil {
		return nil, err
	}
	for i := range films {
		sortGenres(&films[i])
	}
	return films, nil
}

// Delete removes the film with its likes and genre links.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("film_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", id).Delete(&models.FilmGenre{}).Error; err != nil {
			return err
		}
		return repo.RequireAffected(tx.Where("id = ?", id).Delete(&models.Film{}))
	})
}

func (r *Repository) withRefs(ctx context.Context) *gorm.DB {
	return r.DB(ctx).Preload("Mpa").Preload("Genres")
}

func writeGenres(tx *gorm.DB, filmID int64, genres []models.Genre) error {
	if len(genres) == 0 {
		return nil
	}
	rows := make([]models.FilmGenre, 0, len(genres))
	for _, g := range genres {
		rows = append(rows, models.FilmGenre{FilmID: filmID, GenreID: g.ID})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func sortGenres(film *models.Film) {
	sort.Slice(film.Genres, func(i, j int) bool { return film.Genres[i].ID < film.Genres[j].ID })
}
