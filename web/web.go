// Package web provides the HTTP server of the job-board backend:
// engine setup, middleware wiring, routing and graceful shutdown.
package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"jobboard/config"
	"jobboard/logger"
	"jobboard/web/controller"
	"jobboard/web/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Server is the job-board API server with its controllers.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	users        *controller.UserController
	categories   *controller.CategoryController
	jobs         *controller.JobController
	applications *controller.ApplicationController
	server       *controller.ServerController

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	settings := config.GetSettings()
	corsConfig := cors.DefaultConfig()
	if len(settings.CORSOrigins) == 1 && settings.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = settings.CORSOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	engine.Use(cors.New(corsConfig))

	engine.Use(middleware.Auth())

	limiter := middleware.NewRateLimiter(
		config.GetRedisAddr(),
		config.GetRedisPassword(),
		settings.AuthRateLimit,
		time.Duration(settings.AuthRateWindow)*time.Second,
	)
	if limiter != nil {
		logger.Info("auth rate limiting enabled")
	}

	api := engine.Group("/api")
	s.users = controller.NewUserController(api.Group("/users"), limiter)
	s.categories = controller.NewCategoryController(api.Group("/categories"))
	s.jobs = controller.NewJobController(api.Group("/jobs"))
	s.applications = controller.NewApplicationController(api.Group("/applications"))
	s.server = controller.NewServerController(api.Group("/server"))

	return engine, nil
}

// Start begins listening and serving in a background goroutine.
func (s *Server) Start() error {
	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%v:%v", config.GetListen(), config.GetPort())
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler: engine,
	}
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("serve failed:", err)
		}
	}()

	logger.Infof("%v %v listening on %v", config.GetName(), config.GetVersion(), listener.Addr())
	return nil
}

// Stop shuts the server down, draining in-flight requests.
func (s *Server) Stop() error {
	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
