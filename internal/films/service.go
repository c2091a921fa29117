package films

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/angelmondragon/filmorate-backend/internal/likes"
	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
	"github.com/angelmondragon/filmorate-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/filmorate-backend/pkg/errors"
	"github.com/angelmondragon/filmorate-backend/pkg/logger"
	"github.com/angelmondragon/filmorate-backend/pkg/metrics"
	"github.com/angelmondragon/filmorate-backend/pkg/types"
)

const maxDescriptionLength = 200

// ReleaseDateFloor is the earliest accepted release date.
var ReleaseDateFloor = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// UserLookup resolves users referenced by likes.
type UserLookup interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// ServiceParams groups dependencies for the films service.
type ServiceParams struct {
	Store   Store
	Likes   likes.Store
	Users   UserLookup
	Logger  *logger.Logger
	Metrics *metrics.DomainMetrics
	// PopularDefault is the ranking size for a count of zero; zero means
	// DefaultPopularCount.
	PopularDefault int
	// PopularMax caps Popular; zero leaves it uncapped.
	PopularMax int
}

// Service exposes film CRUD, likes and the popularity ranking.
type Service interface {
	Create(ctx context.Context, input CreateFilmInput) (*FilmDTO, error)
	Update(ctx context.Context, input UpdateFilmInput) (*FilmDTO, error)
	Get(ctx context.Context, id int64) (*FilmDTO, error)
	List(ctx context.Context) ([]FilmDTO, error)
	Delete(ctx context.Context, id int64) error
	Like(ctx context.Context, filmID, userID int64) error
	Unlike(ctx context.Context, filmID, userID int64) error
	Popular(ctx context.Context, count int) ([]FilmDTO, error)
}

type service struct {
	store      Store
	likes      likes.Store
	users      UserLookup
	logg       *logger.Logger
	metrics    *metrics.DomainMetrics
	popularDefault int
	popularMax     int
}

// NewService builds a films service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "film store is required")
	}
	if params.Likes == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "like store is required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user lookup is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	popularDefault := params.PopularDefault
	if popularDefault <= 0 {
		popularDefault = DefaultPopularCount
	}
	return &service{
		store:          params.Store,
		likes:          params.Likes,
		users:          params.Users,
		logg:           params.Logger,
		metrics:        params.Metrics,
		popularDefault: popularDefault,
		popularMax:     params.PopularMax,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateFilmInput) (*FilmDTO, error) {
	normalized, err := normalize(input)
	if err != nil {
		return nil, err
	}

	film := normalized.toModel()
	if err := s.store.Create(ctx, film); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create film")
	}

	s.metrics.IncEntity("film", "created")
	s.logg.Info(s.logg.WithFilmID(ctx, film.ID), "film.created")
	return s.Get(ctx, film.ID)
}

func (s *service) Update(ctx context.Context, input UpdateFilmInput) (*FilmDTO, error) {
	if input.ID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "film id is required")
	}
	normalized, err := normalize(input.CreateFilmInput)
	if err != nil {
		return nil, err
	}

	film := normalized.toModel()
	film.ID = input.ID
	if err := s.store.Update(ctx, film); err != nil {
		return nil, mapLookupError(err, "film", input.ID)
	}

	s.metrics.IncEntity("film", "updated")
	s.logg.Info(s.logg.WithFilmID(ctx, film.ID), "film.updated")
	return s.Get(ctx, film.ID)
}

func (s *service) Get(ctx context.Context, id int64) (*FilmDTO, error) {
	film, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "film", id)
	}
	return FromModel(film), nil
}

func (s *service) List(ctx context.Context) ([]FilmDTO, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list films")
	}
	return FromModels(list), nil
}

// Delete removes the film together with its likes and genre links.
func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return mapLookupError(err, "film", id)
	}
	s.metrics.IncEntity("film", "deleted")
	s.logg.Info(s.logg.WithFilmID(ctx, id), "film.deleted")
	return nil
}

// Like records that the user likes the film. Repeating a like changes nothing.
func (s *service) Like(ctx context.Context, filmID, userID int64) error {
	if err := s.ensurePair(ctx, filmID, userID); err != nil {
		return err
	}
	added, err := s.likes.Add(ctx, filmID, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add like")
	}
	if added {
		s.metrics.IncLike("added")
		s.logg.Info(s.logg.WithUserID(s.logg.WithFilmID(ctx, filmID), userID), "like.added")
	}
	return nil
}

// Unlike removes the like if present.
func (s *service) Unlike(ctx context.Context, filmID, userID int64) error {
	if err := s.ensurePair(ctx, filmID, userID); err != nil {
		return err
	}
	removed, err := s.likes.Remove(ctx, filmID, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove like")
	}
	if removed {
		s.metrics.IncLike("removed")
		s.logg.Info(s.logg.WithUserID(s.logg.WithFilmID(ctx, filmID), userID), "like.removed")
	}
	return nil
}

// Popular returns up to count films ranked by likes. A count of zero uses
// the configured default.
func (s *service) Popular(ctx context.Context, count int) ([]FilmDTO, error) {
	if count < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "count must be positive")
	}
	if count == 0 {
		count = s.popularDefault
	}
	if s.popularMax > 0 && count > s.popularMax {
		count = s.popularMax
	}

	list, err := s.store.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list films")
	}
	counts, err := s.likes.CountByFilm(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count likes")
	}
	return FromModels(RankByLikes(list, counts, count)), nil
}

func (s *service) ensurePair(ctx context.Context, filmID, userID int64) error {
	if _, err := s.store.FindByID(ctx, filmID); err != nil {
		return mapLookupError(err, "film", filmID)
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return mapLookupError(err, "user", userID)
	}
	return nil
}

// normalize trims text fields, collapses duplicate genres and checks every field.
func normalize(input CreateFilmInput) (CreateFilmInput, error) {
	out := input
	out.Name = strings.TrimSpace(input.Name)
	out.Description = strings.TrimSpace(input.Description)

	details := map[string]string{}
	if out.Name == "" {
		details["name"] = "is required"
	}
	if utf8.RuneCountInString(out.Description) > maxDescriptionLength {
		details["description"] = fmt.Sprintf("must be at most %d characters", maxDescriptionLength)
	}
	switch {
	case out.ReleaseDate.IsZero():
		details["releaseDate"] = "is required"
	case out.ReleaseDate.Before(ReleaseDateFloor):
		details["releaseDate"] = "must not be before " + ReleaseDateFloor.Format(types.DateLayout)
	}
	if out.Duration <= 0 {
		details["duration"] = "must be positive"
	}
	if _, ok := enums.MpaRatingByID(out.MpaID); !ok {
		details["mpa"] = fmt.Sprintf("unknown rating id %d", out.MpaID)
	}

	genres, unknown := uniqueGenreIDs(input.GenreIDs)
	if len(unknown) > 0 {
		details["genres"] = fmt.Sprintf("unknown genre ids %v", unknown)
	}
	out.GenreIDs = genres

	if len(details) > 0 {
		return CreateFilmInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid film").WithDetails(details)
	}
	return out, nil
}

func uniqueGenreIDs(ids []int64) (known []int64, unknown []int64) {
	seen := make(map[int64]struct{}, len(ids))
	known = make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := enums.GenreByID(id); !ok {
			unknown = append(unknown, id)
			continue
		}
		known = append(known, id)
	}
	sort.Slice(known, func(i, j int) bool { return known[i] < known[j] })
	return known, unknown
}

func mapLookupError(err error, kind string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("%s %d not found", kind, id))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+kind)
}
