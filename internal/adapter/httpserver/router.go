package httpserver

import (
	"time"

	"github.com/ayusharma-ctrl/Spyne/internal/platform/jwt"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter wires every route. The API-key check only guards login and
// car creation; the other endpoints accept requests without it.
func NewRouter(
	authHandler *AuthHandler,
	carHandler *CarHandler,
	tokens *jwt.TokenManager,
	apiKey string,
	requestTimeout time.Duration,
	logger *zap.Logger,
) *chi.Mux {
	cookieAuth := CookieAuth(tokens)
	apiKeyAuth := APIKeyAuth(apiKey)

	mux := chi.NewRouter()
	mux.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		RequestLogger(logger),
		chimw.Timeout(requestTimeout),
	)

	mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.With(apiKeyAuth).Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/verify", authHandler.Verify)
	})

	mux.Route("/cars", func(r chi.Router) {
		r.Get("/", carHandler.Search)
		r.Get("/{id}", carHandler.GetByID)
		r.With(apiKeyAuth, cookieAuth).Post("/", carHandler.Create)
		r.With(cookieAuth).Put("/{id}", carHandler.Update)
		r.With(cookieAuth).Delete("/{id}", carHandler.Delete)
	})

	return mux
}
