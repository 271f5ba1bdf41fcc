package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"country-explorer/internal/config"
	"country-explorer/internal/handlers"
	"country-explorer/internal/middleware"
	"country-explorer/internal/services"
)

type Deps struct {
	Config      config.Config
	UserService *services.UserService
	Tokens      *services.TokenIssuer
	Logger      zerolog.Logger
}

func SetupRouter(d Deps) http.Handler {
	authHandler := handlers.NewAuthHandler(d.UserService, d.Logger)
	userHandler := handlers.NewUserHandler(d.UserService, d.Logger)
	healthHandler := handlers.NewHealthHandler(d.UserService, d.Logger)

	rateLimiter := middleware.NewRateLimiter(d.Config.RateLimitWindow, d.Config.RateLimitMax, d.Logger)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	r.Use(middleware.ErrorHandling(d.Logger))
	r.Use(middleware.PerformanceMonitoring(d.Logger))
	r.Use(middleware.RequestLogging(d.Logger))
	r.Use(middleware.SecurityHeaders())

	r.HandleFunc("/", healthHandler.Root).Methods("GET")
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.Use(rateLimiter.Middleware())
	auth.Use(middleware.RequireJSON())
	auth.HandleFunc("/register", authHandler.Register).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")

	user := api.PathPrefix("/user").Subrouter()
	user.Use(middleware.Authentication(d.Tokens, d.Logger))
	user.HandleFunc("/profile", userHandler.Profile).Methods("GET")

	// CORS wraps the router so preflight requests are answered before route matching.
	return middleware.CORS(d.Config.AllowedOrigins)(r)
}
