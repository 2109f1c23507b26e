package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"jobrelay/backend/internal/api/handlers"
	"jobrelay/backend/internal/api/middleware"
	"jobrelay/backend/internal/services"
)

// RouterConfig зависимости роутера
type RouterConfig struct {
	Searcher       services.JobSearcher
	Logger         *zap.Logger
	JWTSecret      string
	AllowedOrigins []string
	Now            func() time.Time
}

// NewRouter собирает маршруты релея
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	infoHandler := handlers.NewInfoHandler(cfg.Now)
	searchHandler := handlers.NewSearchHandler(cfg.Searcher, logger)

	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.RecoverMiddleware(logger))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.Get("/", infoHandler.Index)
	r.Get("/health", infoHandler.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		r.Get("/api/search", handlers.Handle(logger, searchHandler.Search))
	})

	// Неизвестный метод на известном пути тоже 404
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)

	return r
}
