package routes

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/filmorate-backend/internal/catalog"
	"github.com/angelmondragon/filmorate-backend/internal/films"
	"github.com/angelmondragon/filmorate-backend/internal/friends"
	"github.com/angelmondragon/filmorate-backend/internal/memstore"
	"github.com/angelmondragon/filmorate-backend/internal/users"
	"github.com/angelmondragon/filmorate-backend/pkg/config"
	"github.com/angelmondragon/filmorate-backend/pkg/logger"
	"github.com/angelmondragon/filmorate-backend/pkg/metrics"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Env: "test"},
		RateLimit: config.RateLimitConfig{Window: time.Hour, WriteLimit: 100, Burst: 100, VisitorTTL: time.Hour},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"https://filmorate.example"}},
		Films:     config.FilmsConfig{PopularDefault: 10},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, dbP stubPinger) (http.Handler, *prometheus.Registry) {
	t.Helper()
	store := memstore.New()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	reg := prometheus.NewRegistry()
	domain := metrics.NewDomainMetrics(reg)

	userSvc, err := users.NewService(users.ServiceParams{Store: store.Users(), Logger: logg, Metrics: domain})
	if err != nil {
		t.Fatalf("users service: %v", err)
	}
	filmSvc, err := films.NewService(films.ServiceParams{
		Store:          store.Films(),
		Likes:          store.Likes(),
		Users:          store.Users(),
		Logger:         logg,
		Metrics:        domain,
		PopularDefault: cfg.Films.PopularDefault,
		PopularMax:     cfg.Films.PopularMax,
	})
	if err != nil {
		t.Fatalf("films service: %v", err)
	}
	friendSvc, err := friends.NewService(friends.ServiceParams{Store: store.Friends(), Users: store.Users(), Logger: logg, Metrics: domain})
	if err != nil {
		t.Fatalf("friends service: %v", err)
	}
	catalogSvc, err := catalog.NewService(store.Catalog())
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}

	handler := NewRouter(cfg, logg, dbP, nil, metrics.NewHTTPMetrics(reg), reg, filmSvc, userSvc, friendSvc, catalogSvc)
	return handler, reg
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.10:4242"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthRoutes(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(), stubPinger{})

	if rec := serve(h, http.MethodGet, "/health/live", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected live 200 got %d", rec.Code)
	}
	rec := serve(h, http.MethodGet, "/health/ready", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ready 200 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"db":"ok"`) {
		t.Fatalf("expected db check in body: %s", rec.Body.String())
	}
}

func TestReadyFailsWhenDatabaseIsDown(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(), stubPinger{err: context.DeadlineExceeded})
	if rec := serve(h, http.MethodGet, "/health/ready", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
}

func TestDomainRoutesAreMounted(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(), stubPinger{})

	routes := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodPost, "/users", `{"email":"ann@example.com","login":"annlee","birthday":"1990-01-01"}`, http.StatusCreated},
		{http.MethodPost, "/users", `{"email":"ben@example.com","login":"benkim","birthday":"1990-01-01"}`, http.StatusCreated},
		{http.MethodPost, "/films", `{"name":"Heat","releaseDate":"1995-12-15","duration":170,"mpa":{"id":4}}`, http.StatusCreated},
		{http.MethodGet, "/films", "", http.StatusOK},
		{http.MethodGet, "/films/1", "", http.StatusOK},
		{http.MethodPut, "/films/1/like/1", "", http.StatusOK},
		{http.MethodGet, "/films/popular?count=5", "", http.StatusOK},
		{http.MethodDelete, "/films/1/like/1", "", http.StatusNoContent},
		{http.MethodPut, "/users/1/friends/2", "", http.StatusOK},
		{http.MethodGet, "/users/1/friends", "", http.StatusOK},
		{http.MethodGet, "/users/1/friends/2/status", "", http.StatusOK},
		{http.MethodGet, "/users/1/friends/common/2", "", http.StatusOK},
		{http.MethodDelete, "/users/1/friends/2", "", http.StatusNoContent},
		{http.MethodGet, "/mpa", "", http.StatusOK},
		{http.MethodGet, "/mpa/1", "", http.StatusOK},
		{http.MethodGet, "/genres", "", http.StatusOK},
		{http.MethodGet, "/genres/1", "", http.StatusOK},
		{http.MethodDelete, "/users/2", "", http.StatusNoContent},
		{http.MethodGet, "/nowhere", "", http.StatusNotFound},
	}

	for _, route := range routes {
		rec := serve(h, route.method, route.path, route.body)
		if rec.Code != route.want {
			t.Fatalf("%s %s: expected %d got %d (body=%s)", route.method, route.path, route.want, rec.Code, rec.Body.String())
		}
	}
}

func TestMetricsEndpointExposesRoutePatterns(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(), stubPinger{})

	serve(h, http.MethodGet, "/films/12", "")
	serve(h, http.MethodPost, "/users", `{"email":"ann@example.com","login":"annlee","birthday":"1990-01-01"}`)

	rec := serve(h, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected metrics 200 got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`http_requests_total{method="GET",route="/films/{id}",status="404"} 1`,
		`http_requests_total{method="POST",route="/users",status="201"} 1`,
		`filmorate_entity_mutations_total{action="created",kind="user"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in metrics output:\n%s", want, body)
		}
	}
}

func TestWritesAreRateLimitedWithoutRedis(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Window: time.Hour, WriteLimit: 1, Burst: 2, VisitorTTL: time.Hour}
	h, _ := newTestRouter(t, cfg, stubPinger{})

	var last int
	for i := 0; i < 3; i++ {
		last = serve(h, http.MethodDelete, "/films/99", "").Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected third write to be limited got %d", last)
	}
	if rec := serve(h, http.MethodGet, "/films", ""); rec.Code != http.StatusOK {
		t.Fatalf("reads must pass when writes are limited, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(), stubPinger{})

	req := httptest.NewRequest(http.MethodOptions, "/films", nil)
	req.Header.Set("Origin", "https://filmorate.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "https://filmorate.example" {
		t.Fatalf("expected CORS allow origin, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}
