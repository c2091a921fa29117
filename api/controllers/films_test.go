package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/filmorate-backend/internal/films"
	pkgerrors "github.com/angelmondragon/filmorate-backend/pkg/errors"
)

func TestFilmCreateReturnsCatalogNames(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/films", `{
		"name": "Solaris",
		"description": "ocean planet",
		"releaseDate": "1972-03-20",
		"duration": 167,
		"mpa": {"id": 2},
		"genres": [{"id": 2}, {"id": 5}, {"id": 2}],
		"rate": 4
	}`)
	expectStatus(t, rec, http.StatusCreated)

	var film films.FilmDTO
	decodeData(t, rec, &film)
	if film.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}
	if film.Mpa.ID != 2 || film.Mpa.Name != "PG" {
		t.Fatalf("expected mpa PG got %+v", film.Mpa)
	}
	if len(film.Genres) != 2 || film.Genres[0].ID != 2 || film.Genres[1].ID != 5 {
		t.Fatalf("expected collapsed genres [2 5] got %+v", film.Genres)
	}
	if film.ReleaseDate.String() != "1972-03-20" {
		t.Fatalf("expected release date preserved got %s", film.ReleaseDate)
	}
}

func TestFilmCreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing mpa", `{"name":"x","releaseDate":"2000-01-01","duration":10}`, "mpa"},
		{"zero duration", `{"name":"x","releaseDate":"2000-01-01","duration":0,"mpa":{"id":1}}`, "duration"},
		{"blank name", `{"name":"","releaseDate":"2000-01-01","duration":10,"mpa":{"id":1}}`, "name"},
		{"too early", `{"name":"x","releaseDate":"1895-12-27","duration":10,"mpa":{"id":1}}`, "releaseDate"},
		{"unknown mpa", `{"name":"x","releaseDate":"2000-01-01","duration":10,"mpa":{"id":9}}`, "mpa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(t)
			rec := doJSON(t, h, http.MethodPost, "/films", tt.body)
			expectStatus(t, rec, http.StatusBadRequest)
			apiErr := decodeError(t, rec)
			if apiErr.Code != string(pkgerrors.CodeValidation) {
				t.Fatalf("expected validation code got %s", apiErr.Code)
			}
			details, ok := apiErr.Details.(map[string]any)
			if !ok {
				t.Fatalf("expected details map got %T", apiErr.Details)
			}
			if _, ok := details[tt.field]; !ok {
				t.Fatalf("expected %s in details got %v", tt.field, details)
			}
		})
	}
}

func TestFilmCreateAcceptsFloorDate(t *testing.T) {
	h := newTestRouter(t)
	rec := doJSON(t, h, http.MethodPost, "/films", `{"name":"Arrival of a Train","releaseDate":"1895-12-28","duration":1,"mpa":{"id":1}}`)
	expectStatus(t, rec, http.StatusCreated)
}

func TestFilmCreateMalformedBody(t *testing.T) {
	h := newTestRouter(t)
	rec := doJSON(t, h, http.MethodPost, "/films", `{"name":`)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestFilmUpdate(t *testing.T) {
	h := newTestRouter(t)
	film := createFilm(t, h, "Stalker")

	body := fmt.Sprintf(`{"id":%d,"name":"Stalker (restored)","description":"zone","releaseDate":"1979-05-25","duration":161,"mpa":{"id":3},"genres":[{"id":2}]}`, film.ID)
	rec := doJSON(t, h, http.MethodPut, "/films", body)
	expectStatus(t, rec, http.StatusOK)

	var updated films.FilmDTO
	decodeData(t, rec, &updated)
	if updated.Name != "Stalker (restored)" || updated.Mpa.Name != "PG-13" || len(updated.Genres) != 1 {
		t.Fatalf("unexpected update result %+v", updated)
	}

	rec = doJSON(t, h, http.MethodPut, "/films", `{"id":999,"name":"x","releaseDate":"2000-01-01","duration":10,"mpa":{"id":1}}`)
	expectStatus(t, rec, http.StatusNotFound)

	rec = doJSON(t, h, http.MethodPut, "/films", `{"name":"x","releaseDate":"2000-01-01","duration":10,"mpa":{"id":1}}`)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestFilmGetAndDelete(t *testing.T) {
	h := newTestRouter(t)
	film := createFilm(t, h, "Mirror")

	expectStatus(t, doJSON(t, h, http.MethodGet, fmt.Sprintf("/films/%d", film.ID), ""), http.StatusOK)
	expectStatus(t, doJSON(t, h, http.MethodGet, "/films/abc", ""), http.StatusBadRequest)
	expectStatus(t, doJSON(t, h, http.MethodGet, "/films/-1", ""), http.StatusNotFound)

	expectStatus(t, doJSON(t, h, http.MethodDelete, fmt.Sprintf("/films/%d", film.ID), ""), http.StatusNoContent)
	expectStatus(t, doJSON(t, h, http.MethodGet, fmt.Sprintf("/films/%d", film.ID), ""), http.StatusNotFound)
	expectStatus(t, doJSON(t, h, http.MethodDelete, fmt.Sprintf("/films/%d", film.ID), ""), http.StatusNotFound)
}

func TestFilmLikesDrivePopular(t *testing.T) {
	h := newTestRouter(t)
	first := createFilm(t, h, "first")
	second := createFilm(t, h, "second")
	third := createFilm(t, h, "third")
	alice := createUser(t, h, "alice1")
	bobby := createUser(t, h, "bobby1")

	like := func(filmID, userID int64) *httptest.ResponseRecorder {
		return doJSON(t, h, http.MethodPut, fmt.Sprintf("/films/%d/like/%d", filmID, userID), "")
	}
	expectStatus(t, like(third.ID, alice.ID), http.StatusOK)
	expectStatus(t, like(third.ID, bobby.ID), http.StatusOK)
	expectStatus(t, like(third.ID, bobby.ID), http.StatusOK)
	expectStatus(t, like(second.ID, alice.ID), http.StatusOK)
	expectStatus(t, like(second.ID, 404), http.StatusNotFound)

	rec := doJSON(t, h, http.MethodGet, "/films/popular", "")
	expectStatus(t, rec, http.StatusOK)
	var ranked []films.FilmDTO
	decodeData(t, rec, &ranked)
	if len(ranked) != 3 || ranked[0].ID != third.ID || ranked[1].ID != second.ID || ranked[2].ID != first.ID {
		t.Fatalf("unexpected ranking %+v", ranked)
	}

	rec = doJSON(t, h, http.MethodGet, "/films/popular?count=1", "")
	expectStatus(t, rec, http.StatusOK)
	ranked = nil
	decodeData(t, rec, &ranked)
	if len(ranked) != 1 || ranked[0].ID != third.ID {
		t.Fatalf("expected only the top film got %+v", ranked)
	}

	expectStatus(t, doJSON(t, h, http.MethodDelete, fmt.Sprintf("/films/%d/like/%d", third.ID, bobby.ID), ""), http.StatusNoContent)
	expectStatus(t, doJSON(t, h, http.MethodDelete, fmt.Sprintf("/films/%d/like/%d", third.ID, alice.ID), ""), http.StatusNoContent)

	rec = doJSON(t, h, http.MethodGet, "/films/popular?count=2", "")
	ranked = nil
	decodeData(t, rec, &ranked)
	if len(ranked) != 2 || ranked[0].ID != second.ID || ranked[1].ID != first.ID {
		t.Fatalf("expected tie broken by id after unlikes got %+v", ranked)
	}
}

func TestFilmPopularRejectsBadCount(t *testing.T) {
	h := newTestRouter(t)
	expectStatus(t, doJSON(t, h, http.MethodGet, "/films/popular?count=-1", ""), http.StatusBadRequest)
	expectStatus(t, doJSON(t, h, http.MethodGet, "/films/popular?count=ten", ""), http.StatusBadRequest)

	rec := doJSON(t, h, http.MethodGet, "/films/popular?count=0", "")
	expectStatus(t, rec, http.StatusOK)
	var ranked []films.FilmDTO
	decodeData(t, rec, &ranked)
	if ranked == nil || len(ranked) != 0 {
		t.Fatalf("expected empty list on empty store got %v", ranked)
	}
}

func TestFilmControllersWithoutService(t *testing.T) {
	rec := httptest.NewRecorder()
	FilmList(nil, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/films", nil))
	expectStatus(t, rec, http.StatusInternalServerError)
}

type recordingPopular struct {
	films.Service
	counts []int
}

func (r *recordingPopular) Popular(_ context.Context, count int) ([]films.FilmDTO, error) {
	r.counts = append(r.counts, count)
	return []films.FilmDTO{}, nil
}

func TestFilmPopularUsesConfiguredDefault(t *testing.T) {
	svc := &recordingPopular{}
	h := FilmPopular(svc, 25, nil)

	for _, target := range []string{"/films/popular", "/films/popular?count=0", "/films/popular?count=7"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		expectStatus(t, rec, http.StatusOK)
	}

	want := []int{25, 25, 7}
	if fmt.Sprint(svc.counts) != fmt.Sprint(want) {
		t.Fatalf("expected counts %v got %v", want, svc.counts)
	}
}
