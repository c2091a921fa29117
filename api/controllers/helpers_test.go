package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/filmorate-backend/internal/catalog"
	"github.com/angelmondragon/filmorate-backend/internal/films"
	"github.com/angelmondragon/filmorate-backend/internal/friends"
	"github.com/angelmondragon/filmorate-backend/internal/memstore"
	"github.com/angelmondragon/filmorate-backend/internal/users"
	"github.com/angelmondragon/filmorate-backend/pkg/logger"
	"github.com/angelmondragon/filmorate-backend/pkg/types"
)

// newTestRouter mounts every domain controller over a fresh memory store.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := memstore.New()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	userSvc, err := users.NewService(users.ServiceParams{Store: store.Users(), Logger: logg})
	if err != nil {
		t.Fatalf("users service: %v", err)
	}
	filmSvc, err := films.NewService(films.ServiceParams{
		Store:  store.Films(),
		Likes:  store.Likes(),
		Users:  store.Users(),
		Logger: logg,
	})
	if err != nil {
		t.Fatalf("films service: %v", err)
	}
	friendSvc, err := friends.NewService(friends.ServiceParams{Store: store.Friends(), Users: store.Users(), Logger: logg})
	if err != nil {
		t.Fatalf("friends service: %v", err)
	}
	catalogSvc, err := catalog.NewService(store.Catalog())
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}

	r := chi.NewRouter()
	r.Route("/films", func(r chi.Router) {
		r.Post("/", FilmCreate(filmSvc, logg))
		r.Put("/", FilmUpdate(filmSvc, logg))
		r.Get("/", FilmList(filmSvc, logg))
		r.Get("/popular", FilmPopular(filmSvc, 10, logg))
		r.Get("/{id}", FilmGet(filmSvc, logg))
		r.Delete("/{id}", FilmDelete(filmSvc, logg))
		r.Put("/{id}/like/{userId}", FilmLike(filmSvc, logg))
		r.Delete("/{id}/like/{userId}", FilmUnlike(filmSvc, logg))
	})
	r.Route("/users", func(r chi.Router) {
		r.Post("/", UserCreate(userSvc, logg))
		r.Put("/", UserUpdate(userSvc, logg))
		r.Get("/", UserList(userSvc, logg))
		r.Get("/{id}", UserGet(userSvc, logg))
		r.Delete("/{id}", UserDelete(userSvc, logg))
		r.Get("/{id}/friends", FriendList(friendSvc, logg))
		r.Put("/{id}/friends/{friendId}", FriendRequest(friendSvc, logg))
		r.Delete("/{id}/friends/{friendId}", FriendRemove(friendSvc, logg))
		r.Get("/{id}/friends/{friendId}/status", FriendStatus(friendSvc, logg))
		r.Get("/{id}/friends/common/{otherId}", FriendCommon(friendSvc, logg))
	})
	r.Get("/mpa", MpaList(catalogSvc, logg))
	r.Get("/mpa/{id}", MpaGet(catalogSvc, logg))
	r.Get("/genres", GenreList(catalogSvc, logg))
	r.Get("/genres/{id}", GenreGet(catalogSvc, logg))
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	envelope := struct {
		Data any `json:"data"`
	}{Data: dest}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v (body=%s)", err, rec.Body.String())
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return envelope.Error
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d got %d (body=%s)", want, rec.Code, rec.Body.String())
	}
}

func createUser(t *testing.T, h http.Handler, login string) users.UserDTO {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/users", `{"email":"`+login+`@example.com","login":"`+login+`","name":"","birthday":"1990-04-12"}`)
	expectStatus(t, rec, http.StatusCreated)
	var user users.UserDTO
	decodeData(t, rec, &user)
	return user
}

func createFilm(t *testing.T, h http.Handler, name string) films.FilmDTO {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/films", `{"name":"`+name+`","description":"d","releaseDate":"2000-01-01","duration":90,"mpa":{"id":1}}`)
	expectStatus(t, rec, http.StatusCreated)
	var film films.FilmDTO
	decodeData(t, rec, &film)
	return film
}
