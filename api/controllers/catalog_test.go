package controllers

import (
	"net/http"
	"testing"

	"github.com/angelmondragon/filmorate-backend/internal/films"
)

func TestMpaEndpoints(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/mpa", "")
	expectStatus(t, rec, http.StatusOK)
	var list []films.MpaDTO
	decodeData(t, rec, &list)
	if len(list) != 5 || list[0].Name != "G" || list[4].Name != "NC-17" {
		t.Fatalf("unexpected mpa catalog %+v", list)
	}

	rec = doJSON(t, h, http.MethodGet, "/mpa/3", "")
	expectStatus(t, rec, http.StatusOK)
	var mpa films.MpaDTO
	decodeData(t, rec, &mpa)
	if mpa.ID != 3 || mpa.Name != "PG-13" {
		t.Fatalf("expected PG-13 got %+v", mpa)
	}

	expectStatus(t, doJSON(t, h, http.MethodGet, "/mpa/42", ""), http.StatusNotFound)
}

func TestGenreEndpoints(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/genres", "")
	expectStatus(t, rec, http.StatusOK)
	var list []films.GenreDTO
	decodeData(t, rec, &list)
	if len(list) != 6 || list[0].Name != "Comedy" {
		t.Fatalf("unexpected genre catalog %+v", list)
	}

	rec = doJSON(t, h, http.MethodGet, "/genres/6", "")
	expectStatus(t, rec, http.StatusOK)
	var genre films.GenreDTO
	decodeData(t, rec, &genre)
	if genre.Name != "Action" {
		t.Fatalf("expected Action got %+v", genre)
	}

	expectStatus(t, doJSON(t, h, http.MethodGet, "/genres/0", ""), http.StatusNotFound)
}
