package server

import (
	"context"
	"net/http"
	"os"

	"blog-service/auth"
	cachepackage "blog-service/cache"
	"blog-service/config"
	"blog-service/database"
	"blog-service/handlers"
	"blog-service/store"

	"github.com/umakantv/go-utils/httpserver"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// checkAuth verifies the session cookie for the http server layer. The
// handlers run the same gate themselves so they control the unauthorized
// response body; this callback feeds the verified principal into the
// server's request context for logging.
func checkAuth(cfg *config.Config) func(r *http.Request) (bool, httpserver.RequestAuth) {
	return func(r *http.Request) (bool, httpserver.RequestAuth) {
		claims, err := auth.FromRequest(r, cfg.JWTSecret)
		if err != nil {
			return false, httpserver.RequestAuth{}
		}
		return true, httpserver.RequestAuth{
			Type:   "cookie",
			Client: claims.EmailID,
			Claims: map[string]interface{}{
				"user_id":  claims.UserID,
				"email_id": claims.EmailID,
			},
		}
	}
}

func StartServer() {
	// Initialize logger
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	logger.Info("Starting Blog Service...")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		os.Exit(1)
	}

	// Initialize database (retries until the store is reachable)
	db := database.InitializeDatabase(context.Background(), cfg)
	defer db.Client().Disconnect(context.Background())

	// Initialize cache
	cache := cachepackage.InitializeCache(cfg)
	defer cache.Close()

	users := store.NewUserStore(db)
	posts := store.NewPostStore(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(users, cfg)
	postHandler := handlers.NewPostHandler(users, posts, cache, cfg)

	// Create HTTP server; protected routes gate themselves on the
	// session cookie inside the handler
	server := httpserver.New(cfg.Port, checkAuth(cfg))

	// Register routes
	server.Register(httpserver.Route{
		Name:     "HealthCheck",
		Method:   "GET",
		Path:     "/health",
		AuthType: "none",
	}, httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "blog-service"}`))
	}))

	server.Register(httpserver.Route{
		Name:     "Register",
		Method:   "POST",
		Path:     "/register",
		AuthType: "none",
	}, httpserver.HandlerFunc(authHandler.Register))

	server.Register(httpserver.Route{
		Name:     "Login",
		Method:   "POST",
		Path:     "/login",
		AuthType: "none",
	}, httpserver.HandlerFunc(authHandler.Login))

	server.Register(httpserver.Route{
		Name:     "Logout",
		Method:   "POST",
		Path:     "/logout",
		AuthType: "none",
	}, httpserver.HandlerFunc(authHandler.Logout))

	server.Register(httpserver.Route{
		Name:     "CheckAuth",
		Method:   "GET",
		Path:     "/checkAuth",
		AuthType: "none",
	}, httpserver.HandlerFunc(authHandler.CheckAuth))

	server.Register(httpserver.Route{
		Name:     "ListPosts",
		Method:   "GET",
		Path:     "/posts",
		AuthType: "none",
	}, httpserver.HandlerFunc(postHandler.GetPosts))

	server.Register(httpserver.Route{
		Name:     "CreatePost",
		Method:   "POST",
		Path:     "/post",
		AuthType: "none",
	}, httpserver.HandlerFunc(postHandler.CreatePost))

	logger.Info("Blog Service started on port " + cfg.Port)
	logger.Info("Health check: GET /health")
	logger.Info("API endpoints: /register /login /logout /checkAuth /posts /post")

	// Start server
	if err := server.Start(); err != nil {
		logger.Error("Server failed to start", zap.Error(err))
		os.Exit(1)
	}
}
