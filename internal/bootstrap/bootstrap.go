package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	appAuth "github.com/znurfzh/ethic-sub000/internal/app/auth"
	appControllers "github.com/znurfzh/ethic-sub000/internal/app/controllers"
	appRepos "github.com/znurfzh/ethic-sub000/internal/app/repositories"
	appRoutes "github.com/znurfzh/ethic-sub000/internal/app/routes"
	appServices "github.com/znurfzh/ethic-sub000/internal/app/services"
	"github.com/znurfzh/ethic-sub000/internal/config"
	appMiddleware "github.com/znurfzh/ethic-sub000/internal/middleware"
	pkgAuth "github.com/znurfzh/ethic-sub000/internal/pkg/auth"
	"github.com/znurfzh/ethic-sub000/internal/pkg/logger"
	"github.com/znurfzh/ethic-sub000/internal/pkg/validation"
	"github.com/znurfzh/ethic-sub000/internal/pkg/websocket"
	"github.com/znurfzh/ethic-sub000/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Storage             appRepos.Storage
	JWTService          *pkgAuth.JWTService
	AuthzService        *appAuth.AuthorizationService
	Hub                 *websocket.Hub
	AuthService         *appServices.AuthService
	UserService         appServices.UserService
	PostService         appServices.PostService
	TopicService        appServices.TopicService
	EventService        appServices.EventService
	ConnectionService   appServices.ConnectionService
	NotificationService appServices.NotificationService
	SearchService       appServices.SearchService
	LearningPathService appServices.LearningPathService
	Controllers         *appRoutes.Controllers
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// CONFIG_PATH overrides the default configs/config.yaml.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) != "json"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
		File: logger.FileConfig{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		},
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage creates the in-memory store and fills it with demo data when
// seeding is enabled. Seed failures are logged and do not stop startup.
func SetupStorage(cfg *config.Config, lgr zerolog.Logger) *appRepos.MemStorage {
	storage := appRepos.NewMemStorage()
	lgr.Info().Msg("In-memory storage initialized")

	if cfg.Seed.Enabled {
		opts := seed.Options{
			RandomSeed:    cfg.Seed.RandomSeed,
			HashPasswords: cfg.Security.HashPasswords,
		}
		if opts.RandomSeed == 0 {
			opts.RandomSeed = time.Now().UnixNano()
		}
		if err := seed.CreateDefaultData(context.Background(), storage, lgr, opts); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return storage
}

// BuildDependencies initializes application services and controllers on top of storage.
func BuildDependencies(cfg *config.Config, storage appRepos.Storage, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Storage: storage, Logger: lgr}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.Register(v); err != nil {
			return nil, fmt.Errorf("failed to register validation rules: %w", err)
		}
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthzService = appAuth.NewAuthorizationService(storage, storage)
	deps.Hub = websocket.NewHub(lgr.With().Str("component", "hub").Logger())

	deps.NotificationService = appServices.NewNotificationService(storage, deps.Hub, lgr)
	accountMu := &sync.Mutex{}
	deps.AuthService = appServices.NewAuthService(storage, deps.JWTService, cfg.Security.HashPasswords, accountMu, lgr)
	deps.UserService = appServices.NewUserService(storage, storage, deps.AuthzService, accountMu, lgr)
	deps.PostService = appServices.NewPostService(storage, storage, storage, deps.AuthzService, deps.NotificationService, lgr)
	deps.TopicService = appServices.NewTopicService(storage, storage, deps.AuthzService, lgr)
	deps.EventService = appServices.NewEventService(storage, deps.AuthzService, lgr)
	deps.ConnectionService = appServices.NewConnectionService(storage, storage, deps.AuthzService, deps.NotificationService, lgr)
	deps.SearchService = appServices.NewSearchService(storage, storage, storage, lgr)
	deps.LearningPathService = appServices.NewLearningPathService(storage, storage, storage, deps.AuthzService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = &appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.AuthService, lgr),
		User:         appControllers.NewUserController(deps.UserService),
		Post:         appControllers.NewPostController(deps.PostService, lgr),
		Topic:        appControllers.NewTopicController(deps.TopicService),
		Event:        appControllers.NewEventController(deps.EventService),
		Connection:   appControllers.NewConnectionController(deps.ConnectionService),
		Notification: appControllers.NewNotificationController(deps.NotificationService),
		Search:       appControllers.NewSearchController(deps.SearchService),
		LearningPath: appControllers.NewLearningPathController(deps.LearningPathService, lgr),
		WebSocket:    websocket.NewHandler(deps.Hub, cfg.Server.AllowedOrigins, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	case strings.ToLower(cfg.Server.Mode) == gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.Server.AllowedOrigins) == 0 || (len(cfg.Server.AllowedOrigins) == 1 && cfg.Server.AllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	}
	router.Use(cors.New(corsCfg))

	appRoutes.SetupRouter(router,
		deps.Controllers,
		deps.AuthMiddleware,
		appMiddleware.RateLimit(cfg.Security.RateLimitPerMinute),
	)

	return router
}
