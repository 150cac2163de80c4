package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/account-server/internal/api/http/handler"
	"github.com/dtroode/account-server/internal/api/http/middleware"
	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/model"
)

// SessionService combines login and token authentication.
type SessionService interface {
	handler.SessionService
	middleware.SessionService
}

// Router builds the HTTP handler of the account API.
type Router struct {
	accounts       handler.AccountService
	sessions       SessionService
	contextManager model.ContextManager
	registry       *prometheus.Registry
	testing        bool
	logger         *logger.Logger
}

func New(
	accounts handler.AccountService,
	sessions SessionService,
	contextManager model.ContextManager,
	testing bool,
	logger *logger.Logger,
) *Router {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Router{
		accounts:       accounts,
		sessions:       sessions,
		contextManager: contextManager,
		registry:       registry,
		testing:        testing,
		logger:         logger,
	}
}

// Registry returns the registry served on /metrics.
func (r *Router) Registry() *prometheus.Registry {
	return r.registry
}

// Register wires middleware and routes.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	metrics := middleware.NewMetrics(r.registry)
	authenticate := middleware.NewAuthenticate(r.sessions, r.contextManager, r.logger)

	accountHandler := handler.NewAccount(r.accounts, r.sessions, r.contextManager, r.logger)
	testingHandler := handler.NewTesting(r.accounts, r.testing, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(logging.Handle)
	mux.Use(chimiddleware.Recoverer)
	mux.Use(metrics.Handle)

	mux.Get("/", accountHandler.Hello)
	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))

	mux.Group(func(mux chi.Router) {
		mux.Use(render.SetContentType(render.ContentTypeJSON))

		mux.Post("/login", accountHandler.Login)
		mux.Post("/register", accountHandler.Register)
		mux.Post("/confirmEmail", accountHandler.ConfirmEmail)

		mux.Group(func(mux chi.Router) {
			mux.Use(authenticate.Handle)
			mux.Get("/userInfo", accountHandler.UserInfo)
			mux.Get("/profile", accountHandler.UserInfo)
		})
	})

	mux.Route("/testing", func(mux chi.Router) {
		mux.Use(testingHandler.Guard)
		mux.Get("/", testingHandler.Status)
		mux.Post("/reset", testingHandler.Reset)
	})

	return mux
}
