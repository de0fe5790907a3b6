package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/bountyboard/bountyboard-backend/internal/api/handlers"
	"github.com/bountyboard/bountyboard-backend/internal/api/middleware"
	"github.com/bountyboard/bountyboard-backend/pkg/logging"
)

type Options struct {
	Port           string
	RequestTimeout time.Duration
	AllowedOrigins []string
	DevMode        bool

	// per recipient address
	FaucetRateLimit  int
	FaucetRateWindow time.Duration
}

type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	handler     *handlers.Handler
	tokens      middleware.TokenParser
	rateLimiter *middleware.RateLimiter
	options     Options
	logger      logging.Logger
}

// NewServer builds the router. tokens validates bearer tokens and may be nil only when
// deps.AuthDisabled is set; rateLimiter may be nil, which disables faucet limiting.
func NewServer(deps handlers.Dependencies, tokens middleware.TokenParser, rateLimiter *middleware.RateLimiter, options Options, logger logging.Logger) *Server {
	if !options.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.TraceMiddleware(logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.TimeoutMiddleware(options.RequestTimeout))

	s := &Server{
		router:      router,
		handler:     handlers.NewHandler(deps, logger),
		tokens:      tokens,
		rateLimiter: rateLimiter,
		options:     options,
		logger:      logger,
	}
	s.RegisterRoutes(deps.AuthDisabled)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%s", options.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) RegisterRoutes(authDisabled bool) {
	h := s.handler
	router := s.router

	router.GET("/health", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	api.POST("/auth/nonce", h.RequestNonce)
	api.POST("/auth/verify", h.VerifySignature)

	api.GET("/bounties", h.ListBounties)
	api.GET("/bounties/:id", h.GetBounty)
	api.GET("/bounties/creator/:address", h.ListBountiesByCreator)
	api.GET("/bounties/:id/requests", h.ListBountyRequests)
	api.GET("/bounties/:id/eligibility/:address", h.CheckEligibility)

	api.GET("/requests/:id", h.GetRequest)
	api.GET("/requests/:id/transfer", h.GetTransferPlan)
	api.GET("/requests/supporter/:address", h.ListRequestsBySupporter)
	api.GET("/requests/creator/:address", h.ListRequestsByCreator)

	api.GET("/reputation/:address", h.GetReputation)
	api.GET("/tx/:hash", h.GetTransactionStatus)

	api.POST("/pin", h.PinJSON)
	api.POST("/pin/file", h.PinFile)

	api.GET("/faucet",
		s.rateLimiter.Limit("faucet", func(c *gin.Context) string { return c.Query("to") },
			s.options.FaucetRateLimit, s.options.FaucetRateWindow),
		h.Faucet)

	api.POST("/events", h.HandleChainEvent)
	api.GET("/events", h.ChainEventsHealth)

	protected := api.Group("")
	protected.Use(middleware.WalletAuth(s.tokens, authDisabled))

	protected.POST("/bounties", h.CreateBounty)
	protected.POST("/requests", h.CreateRequest)
	protected.POST("/fulfill", h.Fulfill)
	protected.POST("/release-payment", h.ReleasePayment)
	protected.POST("/ratings", h.SubmitRating)
}

// Handler is the router wrapped in CORS handling
func (s *Server) Handler() http.Handler {
	origins := s.options.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Requested-With", middleware.TraceIDHeader},
		ExposedHeaders: []string{middleware.TraceIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
	})
	return corsHandler.Handler(s.router)
}

// Start blocks until the server stops; http.ErrServerClosed after Shutdown is not an error
func (s *Server) Start() error {
	s.logger.Infof("Starting server on port %s", s.options.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.httpServer.Close()
}
