package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/messaging"
	"storefront/internal/metrics"
	custommiddleware "storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/repository/postgres"
	"storefront/internal/service"
	"storefront/internal/session"
	"storefront/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deps are the external resources the server runs on. DB is required only
// for the postgres catalog; a nil Redis disables rate limiting.
type Deps struct {
	DB        *database.Service
	Redis     *redis.Client
	Publisher messaging.Publisher
}

type Server struct {
	*http.Server
	config   *config.Config
	logger   *zap.Logger
	deps     Deps
	sessions *session.Registry
	metrics  *metrics.Metrics
}

func NewServer(cfg *config.Config, logger *zap.Logger, deps Deps) (*Server, error) {
	if deps.Publisher == nil {
		deps.Publisher = messaging.NewLogPublisher(logger)
	}

	books, products, err := catalogRepositories(cfg, deps.DB)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	sessions := session.NewRegistry(session.Deps{
		Reviews:     repository.NewMemoryReviewRepository(),
		Publisher:   deps.Publisher,
		OrdersTopic: cfg.Kafka.OrdersTopic,
		Timing:      cfg.Timing,
		Metrics:     m,
		Logger:      logger,
	}, cfg.Session.TTL)

	// Initialize services
	catalog := service.NewCatalogService(books, products, cfg.Catalog.PageSize, logger)
	payments := service.NewPaymentService(cfg.Timing.PaymentDelay, m, logger)
	contact := service.NewContactService(deps.Publisher, cfg.Kafka.ContactTopic, logger)

	// Create router
	router := chi.NewRouter()
	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.IsDevelopment()))
	router.Use(m.Middleware)

	s := &Server{
		config:   cfg,
		logger:   logger,
		deps:     deps,
		sessions: sessions,
		metrics:  m,
	}

	router.Get("/health", s.health)
	router.Method(http.MethodGet, "/metrics", m.Handler())

	router.Group(func(r chi.Router) {
		if deps.Redis != nil {
			r.Use(custommiddleware.RateLimitMiddleware(deps.Redis, custommiddleware.RateLimitConfig{
				RequestsPerWindow: cfg.RateLimit.Requests,
				Window:            cfg.RateLimit.Window,
				KeyPrefix:         "ratelimit",
			}, logger))
		}
		r.Use(custommiddleware.RequireJSON(logger))
		r.Use(custommiddleware.SessionMiddleware(sessions, cfg.Session.TTL, logger))

		transport.RegisterLandingRoutes(r)
		transport.NewBookHandler(catalog, logger).RegisterRoutes(r)
		transport.NewCartHandler(catalog, payments, cfg.Timing, m, logger).RegisterRoutes(r)
		transport.NewCafeteriaHandler(catalog, cfg.Timing, m, logger).RegisterRoutes(r)
		transport.NewCheckoutHandler(logger).RegisterRoutes(r)
		transport.NewContactHandler(contact, cfg.Timing.ContactResetDelay, logger).RegisterRoutes(r)
	})

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("Server configured",
		zap.String("catalog", cfg.Catalog.Source),
		zap.Bool("rate_limit", deps.Redis != nil),
		zap.Bool("kafka", cfg.Kafka.Enabled()),
	)
	return s, nil
}

// catalogRepositories picks the book and product sources for cfg
func catalogRepositories(cfg *config.Config, db *database.Service) (repository.BookRepository, repository.ProductRepository, error) {
	switch cfg.Catalog.Source {
	case config.CatalogStatic, "":
		return repository.NewStaticBookRepository(nil), repository.NewStaticProductRepository(nil), nil
	case config.CatalogRemote:
		if cfg.Catalog.RemoteURL == "" {
			return nil, nil, errors.New("remote catalog requires CATALOG_REMOTE_URL")
		}
		client := &http.Client{Timeout: cfg.Catalog.RemoteTimeout}
		return repository.NewRemoteBookRepository(cfg.Catalog.RemoteURL, client), repository.NewStaticProductRepository(nil), nil
	case config.CatalogPostgres:
		if db == nil {
			return nil, nil, errors.New("postgres catalog requires a database connection")
		}
		return postgres.NewBookRepository(db.DB()), postgres.NewProductRepository(db.DB()), nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]interface{}{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	}
	if s.deps.DB != nil {
		db := s.deps.DB.Health(r.Context())
		body["database"] = db
		if db["status"] != "up" {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
		}
	}
	custommiddleware.RespondWithJSON(w, status, body)
}

// Sessions returns the registry of live visitor sessions
func (s *Server) Sessions() *session.Registry {
	return s.sessions
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	s.sessions.Close()

	if err := s.deps.Publisher.Close(); err != nil {
		s.logger.Error("Failed to close publisher", zap.Error(err))
	}

	if s.deps.Redis != nil {
		if err := s.deps.Redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.deps.DB != nil {
		if err := s.deps.DB.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
