// Package web assembles the HTTP server: services, routes, middleware and
// scheduled jobs.
package web

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/kitchenhub/recipe-service/config"
	"github.com/kitchenhub/recipe-service/database"
	"github.com/kitchenhub/recipe-service/logger"
	"github.com/kitchenhub/recipe-service/util/common"
	"github.com/kitchenhub/recipe-service/util/metrics"
	"github.com/kitchenhub/recipe-service/web/controller"
	"github.com/kitchenhub/recipe-service/web/job"
	"github.com/kitchenhub/recipe-service/web/middleware"
	"github.com/kitchenhub/recipe-service/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Services bundles the services behind the HTTP API.
type Services struct {
	Auth    *service.AuthService
	Users   *service.UserService
	Hashtag *service.HashtagService
	Likes   *service.LikeService
	Recipes *service.RecipeService
	Photos  *service.PhotoStore
}

// NewServices wires the services over db using the process configuration.
func NewServices(db *gorm.DB) (*Services, error) {
	auth, err := service.NewAuthService(db)
	if err != nil {
		return nil, err
	}
	photos := service.NewPhotoStore(config.GetImagesDir())
	return &Services{
		Auth:    auth,
		Users:   service.NewUserService(db, auth),
		Hashtag: service.NewHashtagService(db),
		Likes:   service.NewLikeService(db),
		Recipes: service.NewRecipeService(db, config.GetRecipeTypes(), photos),
		Photos:  photos,
	}, nil
}

// Server represents the recipe HTTP server with its scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	services *Services
	cron     *cron.Cron
}

func NewServer(services *Services) *Server {
	return &Server{services: services}
}

// NewRouter builds the gin engine with middleware and every API route.
func NewRouter(s *Services, loginLimit int) *gin.Engine {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.AccessLog())
	engine.Use(metrics.Middleware())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	controller.NewUserController(engine.Group("/user"), s.Users, s.Auth, loginLimit)
	controller.NewRecipeController(engine.Group("/recipe"), s.Auth, s.Recipes, s.Likes, s.Users, s.Hashtag)
	controller.NewAdminController(engine.Group("/admin"), s.Auth)

	engine.GET("/metrics", metrics.Handler())
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "version": config.GetVersion()})
	})

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine
}

// startTask schedules the maintenance jobs.
func (s *Server) startTask() {
	cleanPhotos := job.NewCleanPhotosJob(database.GetDB(), s.services.Photos.Dir())
	if _, err := s.cron.AddJob("@daily", cleanPhotos); err != nil {
		logger.Warning("add clean photos job err: ", err)
	}
	if database.IsSQLite() {
		if _, err := s.cron.AddJob("@every 10m", job.NewCheckpointJob()); err != nil {
			logger.Warning("add checkpoint job err: ", err)
		}
	}
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New(cron.WithLocation(time.UTC))
	s.cron.Start()

	engine := NewRouter(s.services, config.GetLoginRateLimit())

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on ", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("web server stopped: ", err)
		}
	}()

	s.startTask()
	return nil
}

// Stop shuts the HTTP server down and stops the scheduler.
func (s *Server) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err1 = s.httpServer.Shutdown(ctx)
	}
	if s.listener != nil {
		// Shutdown already closes the listener
		if err := s.listener.Close(); !errors.Is(err, net.ErrClosed) {
			err2 = err
		}
	}
	return common.Combine(err1, err2)
}

// GetCron returns the server's cron scheduler instance.
func (s *Server) GetCron() *cron.Cron { return s.cron }

// Addr returns the address the server listens on once started.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}
