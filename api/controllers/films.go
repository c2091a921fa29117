package controllers

import (
	"math"
	"net/http"

	"github.com/angelmondragon/filmorate-backend/api/responses"
	"github.com/angelmondragon/filmorate-backend/api/validators"
	"github.com/angelmondragon/filmorate-backend/internal/films"
	pkgerrors "github.com/angelmondragon/filmorate-backend/pkg/errors"
	"github.com/angelmondragon/filmorate-backend/pkg/logger"
	"github.com/angelmondragon/filmorate-backend/pkg/types"
)

type refPayload struct {
	ID int64 `json:"id" validate:"gt=0"`
}

type filmPayload struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name" validate:"required"`
	Description string       `json:"description" validate:"max=200"`
	ReleaseDate types.Date   `json:"releaseDate"`
	Duration    int          `json:"duration" validate:"gt=0"`
	Mpa         *refPayload  `json:"mpa" validate:"required"`
	Genres      []refPayload `json:"genres" validate:"dive"`
}

func (p filmPayload) input() films.CreateFilmInput {
	in := films.CreateFilmInput{
		Name:        p.Name,
		Description: p.Description,
		ReleaseDate: p.ReleaseDate,
		Duration:    p.Duration,
		GenreIDs:    make([]int64, 0, len(p.Genres)),
	}
	if p.Mpa != nil {
		in.MpaID = p.Mpa.ID
	}
	for _, g := range p.Genres {
		in.GenreIDs = append(in.GenreIDs, g.ID)
	}
	return in
}

// FilmCreate adds a film and answers 201 with the stored representation.
func FilmCreate(svc films.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "film service unavailable"))
			return
		}

		var payload filmPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		film, err := svc.Create(ctx, payload.input())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, film)
	}
}

// FilmUpdate replaces the film identified by the body id.
func FilmUpdate(svc films.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "film service unavailable"))
			return
		}

		var payload filmPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if payload.ID == 0 {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "film id is required"))
			return
		}

		film, err := svc.Update(ctx, films.UpdateFilmInput{ID: payload.ID, CreateFilmInput: payload.input()})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, film)
	}
}

func FilmList(svc films.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "film service unavailable"))
			return
		}

		list, err := svc.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func FilmGet(svc films.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "film service unavailable"))
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		film, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, film)
	}
}

func FilmDelete(svc films.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "film service unavailable"))
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// FilmLike records a like from the path user. Repeating it is a no-op.
func FilmLike(svc films.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "film service unavailable"))
			return
		}

		filmID, userID, err := filmUserIDs(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Like(ctx, filmID, userID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"liked": true})
	}
}

func FilmUnlike(svc films.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "film service unavailable"))
			return
		}

		filmID, userID, err := filmUserIDs(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Unlike(ctx, filmID, userID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// FilmPopular ranks films by likes. An absent or zero count uses
// defaultCount; a non-numeric or negative count is rejected before the
// service is called.
func FilmPopular(svc films.Service, defaultCount int, logg *logger.Logger) http.HandlerFunc {
	if defaultCount <= 0 {
		defaultCount = films.DefaultPopularCount
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "film service unavailable"))
			return
		}

		count, err := validators.ParseQueryInt(r, "count", defaultCount, 0, math.MaxInt32)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if count == 0 {
			count = defaultCount
		}

		list, err := svc.Popular(ctx, count)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func filmUserIDs(r *http.Request) (int64, int64, error) {
	filmID, err := validators.PathID(r, "id")
	if err != nil {
		return 0, 0, err
	}
	userID, err := validators.PathID(r, "userId")
	if err != nil {
		return 0, 0, err
	}
	return filmID, userID, nil
}
