package http

import (
	"context"
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"

	"calmicasa-api/internal/assets"
	"calmicasa-api/internal/auth"
	"calmicasa-api/internal/config"
	"calmicasa-api/internal/http/handler"
	"calmicasa-api/internal/notify"
	"calmicasa-api/internal/resource"
	mongostore "calmicasa-api/internal/store/mongo"
	"calmicasa-api/pkg/metrics"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "10M"
)

type ServerDependencies struct {
	Config         *config.Config
	DB             *mongo.Database
	Gateway        *assets.Gateway
	Reconciler     *assets.Reconciler
	Tokens         *auth.TokenService
	Credentials    *auth.CredentialValidator
	AuthMiddleware *auth.Middleware
	Dispatcher     *notify.Dispatcher
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))
	e.Use(echomiddleware.CORS())
	e.Use(metrics.Middleware())

	guard := deps.AuthMiddleware.RequireAdmin()

	authHandler := handler.NewAuthHandler(deps.Credentials, deps.Tokens)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/verify", authHandler.Verify)
	e.GET("/health", healthCheck)
	metrics.RegisterMetricsRoute(e)

	api := e.Group("/api")

	// One CRUD family per registered kind, same convention everywhere:
	// identifiers travel as path segments, every mutation sits behind the
	// admin guard, reads are public only for public kinds.
	var orderRepo, contactRepo *mongostore.Repository
	for _, kind := range resource.Kinds {
		repo := mongostore.NewRepository(deps.DB, kind)
		rh := handler.NewResourceHandler(repo, deps.Reconciler)

		if kind.PublicRead {
			api.GET("/"+kind.Name, rh.List)
			api.GET("/"+kind.Name+"/:id", rh.Get)
			api.POST("/"+kind.Name, rh.Create, guard)
		} else {
			api.GET("/"+kind.Name, rh.List, guard)
		}
		api.PUT("/"+kind.Name+"/:id", rh.Update, guard)
		api.DELETE("/"+kind.Name+"/:id", rh.Delete, guard)

		switch kind.Name {
		case "orders":
			orderRepo = repo
		case "contacts":
			contactRepo = repo
		}
	}

	uploadHandler := handler.NewUploadHandler(deps.Gateway)
	api.POST("/upload", uploadHandler.Upload, guard)

	orderHandler := handler.NewOrderHandler(orderRepo, deps.Dispatcher)
	api.POST("/order", orderHandler.Submit)

	contactHandler := handler.NewContactHandler(contactRepo, deps.Dispatcher)
	api.POST("/contact", contactHandler.Submit)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
