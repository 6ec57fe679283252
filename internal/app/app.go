package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"estatecrm/internal/config"
	"estatecrm/internal/handlers"
	"estatecrm/internal/repositories"
	"estatecrm/internal/routes"
	"estatecrm/internal/services"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "estatecrm/docs"
)

func Run() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("close database")
		}
	}()
	if err := db.PingContext(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}

	// === Repos ===
	leadRepo := repositories.NewLeadRepository(db)
	updateRepo := repositories.NewLeadUpdateRepository(db)
	statusRepo := repositories.NewStatusRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)

	// === Services ===
	statusService := services.NewStatusService(statusRepo)
	if err := statusService.Load(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("load status catalog")
	}

	var emailNotifier services.Notifier
	if cfg.Email.SMTPHost != "" {
		emailNotifier = services.NewEmailNotifier(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
			logger,
		)
	}
	var telegramNotifier services.Notifier
	if cfg.Telegram.BotToken != "" {
		tn, err := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram notifier")
		}
		telegramNotifier = tn
	}
	notifier := services.CombineNotifiers(emailNotifier, telegramNotifier)

	leadService := services.NewLeadService(leadRepo, statusService, employeeRepo)
	ledgerService := services.NewLedgerService(leadService, updateRepo, statusService)
	assignmentService := services.NewAssignmentService(leadService, employeeRepo, notifier)
	bookingService := services.NewBookingService(leadService, bookingRepo, notifier)

	// === Handlers ===
	leadHandler := handlers.NewLeadHandler(leadService, ledgerService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	statusHandler := handlers.NewStatusHandler(statusService)

	// === Gin ===
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(requestLogger(logger))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		[]byte(cfg.Auth.JWTSecret),
		leadHandler,
		assignmentHandler,
		bookingHandler,
		statusHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info().Str("addr", listenAddr).Msg("server listening")
	if err := router.Run(listenAddr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("request")
	}
}
