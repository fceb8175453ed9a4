package app

import (
	"database/sql"
	"fmt"
	"log"

	"focusboard/internal/config"
	"focusboard/internal/handlers"
	"focusboard/internal/pdf"
	"focusboard/internal/repositories"
	"focusboard/internal/routes"
	"focusboard/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "focusboard/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()
	if err := repositories.Migrate(db); err != nil {
		log.Fatal("migrations failed: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	// === Services ===
	authService := services.NewAuthService([]byte(cfg.Auth.JWTSecret))

	var emailService services.EmailService
	if cfg.Email.SMTPHost != "" {
		emailService = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	}

	userService := services.NewUserService(userRepo, emailService, authService)
	taskService := services.NewTaskService(taskRepo)

	var resetService services.ResetService
	if emailService != nil && cfg.Email.OperatorEmail != "" {
		resetService = services.NewResetServiceWithAlerts(taskRepo, emailService, cfg.Email.OperatorEmail)
	} else {
		resetService = services.NewResetService(taskRepo)
	}

	var notifier services.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		tg, err := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Printf("telegram disabled: %v", err)
		} else {
			notifier = tg
		}
	}
	reminderService := services.NewReminderService(taskRepo, notifier)

	reportService := services.NewReportService(taskRepo, pdf.NewReportGenerator())

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	reportHandler := handlers.NewReportHandler(reportService)
	systemHandler := handlers.NewSystemHandler(resetService, reminderService, cfg.Auth.ResetSecret)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		taskHandler,
		reportHandler,
		systemHandler,
		[]byte(cfg.Auth.JWTSecret),
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
