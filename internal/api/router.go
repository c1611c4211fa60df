package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/miniblog/blog-api/docs"
	"github.com/miniblog/blog-api/internal/api/handler"
	"github.com/miniblog/blog-api/internal/api/middleware"
	"github.com/miniblog/blog-api/internal/core/domain"
	"github.com/miniblog/blog-api/internal/core/ports"
)

// Deps bundles everything the router needs.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	Posts     ports.PostService
	Users     ports.UserService
	Files     ports.FileManager
	JWTSecret string
	// UploadDir, when non-empty, is served statically under /uploads
	// (local residency mode).
	UploadDir string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blog"))

	auth := middleware.Auth(d.JWTSecret)
	adminOnly := middleware.RBAC(string(domain.RoleAdmin))

	postHandler := handler.NewPostHandler(d.Posts, d.Files)
	userHandler := handler.NewUserHandler(d.Users, d.Files)

	// --- Posts ---
	posts := e.Group("/api/posts")
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.POST("", postHandler.Create, auth)
	posts.PATCH("/:id", postHandler.Update, auth)
	posts.DELETE("/:id", postHandler.Delete, auth)
	posts.POST("/filter", postHandler.Sweep, auth, adminOnly)

	// --- Users ---
	users := e.Group("/api/users")
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.PATCH("/:id", userHandler.Update, auth)
	users.DELETE("/:id", userHandler.Delete, auth, adminOnly)
	users.POST("/filter", userHandler.Sweep, auth, adminOnly)

	// --- Local image serving (local residency mode only) ---
	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}

	// --- Health probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
