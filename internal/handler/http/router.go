package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devconnector/devconnector/internal/auth"
	"github.com/devconnector/devconnector/internal/service"
	"github.com/devconnector/devconnector/pkg/health"
	"github.com/devconnector/devconnector/pkg/middleware"
)

// RouterConfig holds the non-service inputs for router construction.
type RouterConfig struct {
	CORS              CORSConfig
	PprofAllowedCIDRs []string
	// PublicCacheMaxAge is the Cache-Control max-age in seconds for the
	// public profile listing endpoints.
	PublicCacheMaxAge int
}

// NewRouter creates a chi router with all routes registered.
func NewRouter(
	userService *service.UserService,
	profileService *service.ProfileService,
	postService *service.PostService,
	tokens *auth.TokenManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("devconnector"))
	r.Use(middleware.PrometheusMetrics("devconnector"))

	// Operational endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	// Token validator bridging the gate to the token manager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := tokens.Verify(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{UserID: claims.UserID}, nil
	}
	authGate := middleware.Auth(tokenValidator, logger)

	userHandler := NewUserHandler(userService, logger)
	authHandler := NewAuthHandler(userService, logger)
	profileHandler := NewProfileHandler(profileService, userService, logger)
	postHandler := NewPostHandler(postService, logger)

	// Registration (public)
	r.Route("/api/users", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Post("/", userHandler.Register)
	})

	// Login (public) and whoami (gated)
	r.Route("/api/auth", func(r chi.Router) {
		r.With(ContentTypeJSON).Post("/", authHandler.Login)
		r.With(authGate).Get("/", authHandler.Whoami)
	})

	r.Route("/api/profiles", func(r chi.Router) {
		// Public, cacheable listings
		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(cfg.PublicCacheMaxAge))
			r.Get("/", profileHandler.List)
			r.Get("/user/{userID}", profileHandler.GetByUserID)
		})

		// Own profile (gated)
		r.Route("/me", func(r chi.Router) {
			r.Use(authGate)

			r.Get("/", profileHandler.GetMine)
			r.With(ContentTypeJSON).Post("/", profileHandler.Upsert)
			r.Delete("/", profileHandler.DeleteAccount)

			r.With(ContentTypeJSON).Put("/experience", profileHandler.AddExperience)
			r.Delete("/experience/{id}", profileHandler.DeleteExperience)
			r.With(ContentTypeJSON).Put("/education", profileHandler.AddEducation)
			r.Delete("/education/{id}", profileHandler.DeleteEducation)
		})
	})

	// Posts (all gated). Like and unlike carry no body, so the content
	// type check only wraps the body-carrying routes.
	r.Route("/api/posts", func(r chi.Router) {
		r.Use(authGate)

		r.With(ContentTypeJSON).Post("/", postHandler.Create)
		r.Get("/", postHandler.List)
		r.Get("/{id}", postHandler.GetByID)
		r.Delete("/{id}", postHandler.Delete)

		r.Put("/{id}/like", postHandler.Like)
		r.Put("/{id}/unlike", postHandler.Unlike)

		r.With(ContentTypeJSON).Post("/{id}/comments", postHandler.AddComment)
		r.Delete("/{id}/comments/{commentID}", postHandler.DeleteComment)
	})

	return r
}
