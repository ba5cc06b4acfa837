package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"kwikkash/internal/advisor"
	"kwikkash/internal/config"
	"kwikkash/internal/database"
	"kwikkash/internal/handlers"
	"kwikkash/internal/logger"
	"kwikkash/internal/middleware"
	"kwikkash/internal/services"
	"kwikkash/internal/validator"

	_ "kwikkash/internal/docs" // Import swagger docs
)

// @title           Kwik Kash API
// @version         1.0
// @description     Kwik Kash is a personal budgeting application that derives a daily spending limit from income and fixed expenses, and tracks spending, savings goals, and an emergency fund.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	profileService := services.NewProfileService(db)
	expenseService := services.NewExpenseService(db, profileService)
	transactionService := services.NewTransactionService(db)
	goalService := services.NewGoalService(db, profileService)
	fundService := services.NewFundService(db, profileService)

	advisorClient := advisor.NewClient(
		appConfig.AdvisorURL, appConfig.AdvisorAPIKey, appConfig.AdvisorModel, appConfig.AdvisorTimeout)
	advisorService := services.NewAdvisorService(db, advisor.New(advisorClient), appConfig.AdvisorCacheTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	profileHandler := handlers.NewProfileHandler(profileService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	fundHandler := handlers.NewFundHandler(fundService, auditService)
	advisorHandler := handlers.NewAdvisorHandler(advisorService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Account and onboarding profile
	protected.GET("/me", authHandler.GetMe)
	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile", profileHandler.UpdateProfile)
	protected.GET("/profile/budget", profileHandler.GetBudget)

	// Fixed expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/payments", expenseHandler.GetLoggedPayments)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)
	expenses.POST("/:id/payments", expenseHandler.LogPayment)
	expenses.DELETE("/:id/payments/:month", expenseHandler.UnlogPayment)

	// Transaction ledger routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/today", transactionHandler.GetTodaysSpending)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Savings goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/plan", goalHandler.GetPlan)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.POST("/:id/contributions", goalHandler.Contribute)

	// Emergency fund routes
	fund := protected.Group("/fund")
	fund.GET("", fundHandler.GetFund)
	fund.POST("/entries", fundHandler.RecordEntry)
	fund.PUT("/target", fundHandler.SetTarget)

	// AI advisor routes
	advisorRoutes := protected.Group("/advisor")
	advisorRoutes.GET("/recommendations", advisorHandler.GetRecommendations)
	advisorRoutes.GET("/alerts", advisorHandler.GetSpendingAlert)
	advisorRoutes.POST("/forecast", advisorHandler.GetForecast)

	log.Infof("Starting Kwik Kash backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
