package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/guessnica/guessnica-backend/config"
	"github.com/guessnica/guessnica-backend/database"
	adminctrl "github.com/guessnica/guessnica-backend/internal/controller/admin"
	userctrl "github.com/guessnica/guessnica-backend/internal/controller/user"
	"github.com/guessnica/guessnica-backend/internal/logger"
	"github.com/guessnica/guessnica-backend/internal/middleware"
	"github.com/guessnica/guessnica-backend/internal/model"
	"github.com/guessnica/guessnica-backend/internal/repository"
	"github.com/guessnica/guessnica-backend/internal/service"
	"github.com/guessnica/guessnica-backend/internal/storage"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Guessnica API
// @version 1.0
// @description Daily geolocation guessing game for Legnica. Guess where the photo was taken.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewRedisClient,
			storage.NewObjectStorage,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewLocationRepository,
			repository.NewRiddleRepository,
			repository.NewUserRiddleRepository,
			repository.NewVerificationCodeRepository,
		),

		fx.Provide(
			service.NewEmailSender,
			func(cfg *config.Config) service.JwtService {
				return service.NewJwtService(cfg.Jwt.Secret)
			},
			func(
				userRepo repository.UserRepository,
				codeRepo repository.VerificationCodeRepository,
				jwtService service.JwtService,
				emailSender service.EmailSender,
				cfg *config.Config,
			) service.AuthService {
				return service.NewAuthService(userRepo, codeRepo, jwtService, emailSender, cfg.App.BaseURL)
			},
			service.NewPasswordResetService,
			func(
				userRiddleRepo repository.UserRiddleRepository,
				riddleRepo repository.RiddleRepository,
				cfg *config.Config,
			) service.GameService {
				return service.NewGameService(userRiddleRepo, riddleRepo, cfg.Game.DailyRolloverHourUTC)
			},
			service.NewLeaderboardService,
			service.NewUserService,
			service.NewRiddleService,
			service.NewLocationService,
			service.NewCleanupService,
		),

		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewPasswordResetController,
			userctrl.NewGameController,
			userctrl.NewLeaderboardController,
			userctrl.NewUserController,
			adminctrl.NewRiddleController,
			adminctrl.NewLocationController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedDB),
		fx.Invoke(StartCleanupScheduler),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewRedisClient(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR not set, leaderboard caching disabled")
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	jwtService service.JwtService,
	userRepo repository.UserRepository,
	authCtrl *userctrl.AuthController,
	resetCtrl *userctrl.PasswordResetController,
	gameCtrl *userctrl.GameController,
	leaderboardCtrl *userctrl.LeaderboardController,
	userCtrl *userctrl.UserController,
	riddleCtrl *adminctrl.RiddleController,
	locationCtrl *adminctrl.LocationController,
) {
	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := middleware.RequireAuth(jwtService, userRepo)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		auth.POST("/register", authCtrl.Register)
		auth.GET("/confirm-email", authCtrl.ConfirmEmail)
		auth.POST("/login", authCtrl.Login)
		auth.POST("/logout", authRequired, authCtrl.Logout)
		auth.GET("/me", authRequired, authCtrl.Me)
		auth.POST("/password-reset/request", resetCtrl.RequestReset)
		auth.POST("/password-reset/verify", resetCtrl.VerifyResetCode)
		auth.POST("/password-reset/complete", resetCtrl.SetNewPassword)

		game := api.Group("/game", authRequired)
		game.GET("/daily", gameCtrl.GetDailyRiddle)
		game.POST("/answer", gameCtrl.SubmitAnswer)

		api.GET("/leaderboard", leaderboardCtrl.GetLeaderboard)
		api.GET("/leaderboard/rank", authRequired, leaderboardCtrl.GetUserRank)

		user := api.Group("/user", authRequired)
		user.GET("/stats", userCtrl.GetStats)
		user.GET("/history", userCtrl.GetHistory)
		user.POST("/avatar", userCtrl.UploadAvatar)
		user.GET("/avatar", userCtrl.GetAvatar)
	}

	adminAPI := router.Group("/api/v1/admin", authRequired, middleware.RequireAdmin())
	{
		riddles := adminAPI.Group("/riddles")
		riddles.GET("", riddleCtrl.GetAllRiddles)
		riddles.GET("/:riddle_id", riddleCtrl.GetRiddle)
		riddles.POST("", riddleCtrl.CreateRiddle)
		riddles.PUT("/:riddle_id", riddleCtrl.UpdateRiddle)
		riddles.DELETE("/:riddle_id", riddleCtrl.DeleteRiddle)

		locations := adminAPI.Group("/locations")
		locations.GET("", locationCtrl.GetAllLocations)
		locations.GET("/:location_id", locationCtrl.GetLocation)
		locations.POST("", locationCtrl.CreateLocation)
		locations.PUT("/:location_id", locationCtrl.UpdateLocation)
		locations.DELETE("/:location_id", locationCtrl.DeleteLocation)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Guessnica API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func StartCleanupScheduler(lc fx.Lifecycle, cleanup *service.CleanupService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return cleanup.Start()
		},
		OnStop: func(ctx context.Context) error {
			return cleanup.Stop()
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Location{},
		&model.Riddle{},
		&model.UserRiddle{},
		&model.UserVerificationCode{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed")
	return nil
}

func SeedDB(db *gorm.DB) error {
	return database.SeedDatabase(db)
}
