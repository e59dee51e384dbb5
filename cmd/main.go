package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Sooraj-Rao/quiz-builder/config"
	"github.com/Sooraj-Rao/quiz-builder/database"
	_ "github.com/Sooraj-Rao/quiz-builder/docs" // Swagger docs - auto-generated
	adminctrl "github.com/Sooraj-Rao/quiz-builder/internal/controller/admin"
	userctrl "github.com/Sooraj-Rao/quiz-builder/internal/controller/user"
	"github.com/Sooraj-Rao/quiz-builder/internal/logger"
	"github.com/Sooraj-Rao/quiz-builder/internal/middleware"
	"github.com/Sooraj-Rao/quiz-builder/internal/model"
	"github.com/Sooraj-Rao/quiz-builder/internal/repository"
	"github.com/Sooraj-Rao/quiz-builder/internal/service"
)

// @title Online Exam Portal API
// @version 1.0
// @description REST API for a proctored online examination portal: timed multiple-choice tests joined by code, single-attempt scoring and admin analytics.
// @contact.name API Support
// @license.name MIT
// @host localhost:5000
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewTestRepository,
			repository.NewAttemptRepository,
		),

		// Services layer
		fx.Provide(
			service.NewScoringService,
			service.NewAuthService,
			service.NewUserTestService,
			service.NewTestSubmissionService,
			service.NewAdminTestService,
			service.NewAdminUserService,
		),

		// API controllers layer
		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewUserTestController,
			adminctrl.NewAdminTestController,
			adminctrl.NewAdminUserController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Route request logs through zerolog instead of Gin's default logger.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *userctrl.AuthController,
	userTestCtrl *userctrl.UserTestController,
	adminTestCtrl *adminctrl.AdminTestController,
	adminUserCtrl *adminctrl.AdminUserController,
) {
	api := router.Group("/api")

	// Public auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)
	}
	api.POST("/admin/login", adminUserCtrl.Login)

	// Test-taking routes, bearer token required
	testsGroup := api.Group("/tests", middleware.AuthRequired(cfg))
	{
		testsGroup.GET("", userTestCtrl.GetAvailableTests)
		testsGroup.GET("/user/history", userTestCtrl.GetHistory)
		testsGroup.GET("/:testId", userTestCtrl.GetTestDetails)
		testsGroup.POST("/:testId/submit", userTestCtrl.SubmitTest)
	}

	// Admin routes, admin role required
	adminGroup := api.Group("/admin", middleware.AuthRequired(cfg), middleware.AdminRequired())
	{
		adminGroup.GET("/tests", adminTestCtrl.ListTests)
		adminGroup.POST("/tests", adminTestCtrl.CreateTest)
		adminGroup.GET("/tests/:testId", adminTestCtrl.GetTest)
		adminGroup.PUT("/tests/:testId", adminTestCtrl.UpdateTest)
		adminGroup.DELETE("/tests/:testId", adminTestCtrl.DeleteTest)

		adminGroup.GET("/users", adminUserCtrl.ListUsers)
		adminGroup.PUT("/users/:userId", adminUserCtrl.UpdateUser)
		adminGroup.DELETE("/users/:userId", adminUserCtrl.DeleteUser)

		adminGroup.GET("/analytics/:testId", adminTestCtrl.GetAnalytics)
		adminGroup.GET("/test-result/:userId/:attemptId", adminTestCtrl.GetAttemptDetail)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam portal API server starting on port %s", cfg.Server.Port)
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

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Test{},
		&model.Question{},
		&model.Attempt{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
