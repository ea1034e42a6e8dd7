package server

import (
	"net/http"

	"hostpanel/internal/config"
	"hostpanel/internal/handler"
	"hostpanel/internal/hetzner"
	"hostpanel/internal/middleware"
	"hostpanel/internal/repository"
	"hostpanel/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Server struct {
	router     *gin.Engine
	db         *sqlx.DB
	cfg        *config.Config
	logger     *zap.Logger
	log        *logrus.Logger
	vpsService service.VpsService
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger, log *logrus.Logger,
	hetznerClient *hetzner.Client, cleanup *service.CleanupQueue) *Server {
	router := gin.Default()
	router.Use(middleware.CORS(cfg.CORS.Origin))

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		logger: logger,
		log:    log,
	}

	s.setupRoutes(hetznerClient, cleanup)

	return s
}

// VpsService exposes the VPS service for the periodic status sweep.
func (s *Server) VpsService() service.VpsService {
	return s.vpsService
}

func (s *Server) setupRoutes(hetznerClient *hetzner.Client, cleanup *service.CleanupQueue) {
	userRepo := repository.NewUserRepository(s.db, s.log)
	serverRepo := repository.NewServerRepository(s.db, s.logger)
	vpsRepo := repository.NewVpsRepository(s.db, s.logger)
	attemptRepo := repository.NewLoginAttemptRepository(s.db, s.log)

	authService := service.NewAuthService(userRepo, attemptRepo,
		s.cfg.Auth.JWTSecret, s.cfg.Auth.JWTExpiration, s.logger)
	userService := service.NewUserService(userRepo, s.logger)
	serverService := service.NewServerService(serverRepo, s.logger)
	s.vpsService = service.NewVpsService(vpsRepo, hetznerClient, cleanup, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)
	serverHandler := handler.NewServerHandler(serverService, s.logger)
	vpsHandler := handler.NewVpsHandler(s.vpsService, s.logger)
	dashboardHandler := handler.NewDashboardHandler(userRepo, serverRepo, vpsRepo, s.logger)
	pageHandler := handler.NewPageHandler()

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Pages
	s.router.LoadHTMLGlob("templates/*.html")
	s.router.Static("/static", "./static")
	s.router.GET("/", pageHandler.Index)
	s.router.GET("/login", pageHandler.Login)
	s.router.GET("/register", pageHandler.Register)
	s.router.GET("/dashboard", pageHandler.Dashboard)
	s.router.GET("/servers", pageHandler.Servers)
	s.router.GET("/vps", pageHandler.Vps)
	s.router.GET("/users", pageHandler.Users)
	s.router.GET("/monitoring", pageHandler.Monitoring)
	s.router.GET("/settings", pageHandler.Settings)

	api := s.router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", authHandler.Me)

		servers := api.Group("/servers")
		servers.GET("", serverHandler.List)
		servers.POST("", serverHandler.Create)
		servers.GET("/:id", serverHandler.Get)
		servers.PUT("/:id", serverHandler.Update)
		servers.DELETE("/:id", serverHandler.Delete)
		servers.GET("/:id/metrics", serverHandler.Metrics)

		vps := api.Group("/vps")
		vps.GET("", vpsHandler.List)
		vps.POST("", vpsHandler.Create)
		vps.GET("/:id", vpsHandler.Get)
		vps.PUT("/:id", vpsHandler.Update)
		vps.DELETE("/:id", vpsHandler.Delete)
		vps.POST("/:id/power-on", vpsHandler.PowerOn)
		vps.POST("/:id/power-off", vpsHandler.PowerOff)
		vps.POST("/:id/reboot", vpsHandler.Reboot)
		vps.POST("/:id/sync", vpsHandler.Sync)

		users := api.Group("/users")
		users.GET("", userHandler.List)
		users.POST("", userHandler.Create)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)

		dashboard := api.Group("/dashboard")
		dashboard.GET("/stats", dashboardHandler.Stats)
		dashboard.GET("/activity", dashboardHandler.Activity)
		dashboard.GET("/health", dashboardHandler.Health)
		dashboard.GET("/servers", dashboardHandler.Servers)
	}
}

func (s *Server) Run(addr string) {
	s.log.Infof("Server starting on %s...", addr)
	if err := s.router.Run(addr); err != nil {
		s.log.Fatalf("Server failed to start: %v", err)
	}
}
