package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/filmorate-backend/api/controllers"
	"github.com/angelmondragon/filmorate-backend/api/middleware"
	"github.com/angelmondragon/filmorate-backend/internal/catalog"
	"github.com/angelmondragon/filmorate-backend/internal/films"
	"github.com/angelmondragon/filmorate-backend/internal/friends"
	"github.com/angelmondragon/filmorate-backend/internal/users"
	"github.com/angelmondragon/filmorate-backend/pkg/config"
	"github.com/angelmondragon/filmorate-backend/pkg/db"
	"github.com/angelmondragon/filmorate-backend/pkg/logger"
	"github.com/angelmondragon/filmorate-backend/pkg/metrics"
	"github.com/angelmondragon/filmorate-backend/pkg/redis"
)

// NewRouter wires the public API. dbP and redisClient may be nil: the memory
// store has nothing to ping, and without redis writes are limited in-process
// and create requests are not replayed.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	filmService films.Service,
	userService users.Service,
	friendService friends.Service,
	catalogService catalog.Service,
) http.Handler {
	r := chi.NewRouter()

	var (
		rateStore        redis.RateLimiter
		idempotencyStore redis.IdempotencyStore
		fallback         middleware.Limiter
	)
	if redisClient != nil {
		rateStore = redisClient
		idempotencyStore = redisClient
	} else {
		fallback = middleware.NewIPRateLimiter(cfg.RateLimit.WriteLimit, cfg.RateLimit.Window, cfg.RateLimit.Burst, cfg.RateLimit.VisitorTTL)
	}
	writePolicy := middleware.NewRateLimitPolicy("writes", cfg.RateLimit.Window, cfg.RateLimit.WriteLimit)
	idempotent := middleware.Idempotency(idempotencyStore, cfg.Idempotency.TTL, logg)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.RateLimit(writePolicy, rateStore, fallback, logg),
	)

	readiness := map[string]controllers.Pinger{}
	if dbP != nil {
		readiness["db"] = dbP
	}
	if redisClient != nil {
		readiness["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/films", func(r chi.Router) {
		r.With(idempotent).Post("/", controllers.FilmCreate(filmService, logg))
		r.Put("/", controllers.FilmUpdate(filmService, logg))
		r.Get("/", controllers.FilmList(filmService, logg))
		r.Get("/popular", controllers.FilmPopular(filmService, cfg.Films.PopularDefault, logg))
		r.Get("/{id}", controllers.FilmGet(filmService, logg))
		r.Delete("/{id}", controllers.FilmDelete(filmService, logg))
		r.Put("/{id}/like/{userId}", controllers.FilmLike(filmService, logg))
		r.Delete("/{id}/like/{userId}", controllers.FilmUnlike(filmService, logg))
	})

	r.Route("/users", func(r chi.Router) {
		r.With(idempotent).Post("/", controllers.UserCreate(userService, logg))
		r.Put("/", controllers.UserUpdate(userService, logg))
		r.Get("/", controllers.UserList(userService, logg))
		r.Get("/{id}", controllers.UserGet(userService, logg))
		r.Delete("/{id}", controllers.UserDelete(userService, logg))

		r.Route("/{id}/friends", func(r chi.Router) {
			r.Get("/", controllers.FriendList(friendService, logg))
			r.Get("/common/{otherId}", controllers.FriendCommon(friendService, logg))
			r.Put("/{friendId}", controllers.FriendRequest(friendService, logg))
			r.Delete("/{friendId}", controllers.FriendRemove(friendService, logg))
			r.Get("/{friendId}/status", controllers.FriendStatus(friendService, logg))
		})
	})

	r.Route("/mpa", func(r chi.Router) {
		r.Get("/", controllers.MpaList(catalogService, logg))
		r.Get("/{id}", controllers.MpaGet(catalogService, logg))
	})
	r.Route("/genres", func(r chi.Router) {
		r.Get("/", controllers.GenreList(catalogService, logg))
		r.Get("/{id}", controllers.GenreGet(catalogService, logg))
	})

	return r
}
