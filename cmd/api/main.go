package main

import (
	"fmt"
	"mashtal/internal/config"
	"mashtal/internal/database"
	"mashtal/internal/handlers"
	"mashtal/internal/logger"
	"mashtal/internal/middleware"
	"mashtal/internal/services"
	"mashtal/internal/validator"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "mashtal/internal/docs" // Import swagger docs
)

// @title           Mashtal API
// @version         1.0
// @description     Mashtal is a greenhouse farm-accounting application that tracks crop cycles, transactions, farmer shares, supplier accounts and treasury funds.
// @termsOfService  http://swagger.io/terms/

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

	// Register custom binding validators
	validator.Register()

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
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	settingsService := services.NewSettingsService(db)
	greenhouseService := services.NewGreenhouseService(db)
	cycleService := services.NewCropCycleService(db, greenhouseService)
	transactionService := services.NewTransactionService(db, cycleService, settingsService)
	farmerService := services.NewFarmerService(db, cycleService)
	supplierService := services.NewSupplierService(db)
	programService := services.NewProgramService(db, cycleService)
	advanceService := services.NewAdvanceService(db)
	reportService := services.NewReportService(db, settingsService)
	backupService := services.NewBackupService(db, settingsService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	greenhouseHandler := handlers.NewGreenhouseHandler(greenhouseService)
	cycleHandler := handlers.NewCycleHandler(cycleService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	farmerHandler := handlers.NewFarmerHandler(farmerService)
	supplierHandler := handlers.NewSupplierHandler(supplierService)
	programHandler := handlers.NewProgramHandler(programService)
	advanceHandler := handlers.NewAdvanceHandler(advanceService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	reportHandler := handlers.NewReportHandler(reportService)
	backupHandler := handlers.NewBackupHandler(backupService)

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

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Greenhouse routes
	greenhouses := protected.Group("/greenhouses")
	greenhouses.POST("", greenhouseHandler.CreateGreenhouse)
	greenhouses.GET("", greenhouseHandler.GetGreenhouses)
	greenhouses.GET("/:id", greenhouseHandler.GetGreenhouse)
	greenhouses.PUT("/:id", greenhouseHandler.UpdateGreenhouse)
	greenhouses.DELETE("/:id", greenhouseHandler.DeleteGreenhouse)
	greenhouses.GET("/:id/report", reportHandler.GetGreenhouseReport)

	// Crop cycle routes
	cycles := protected.Group("/cycles")
	cycles.POST("", cycleHandler.CreateCycle)
	cycles.GET("", cycleHandler.GetCycles)
	cycles.GET("/:id", cycleHandler.GetCycle)
	cycles.PUT("/:id", cycleHandler.UpdateCycle)
	cycles.DELETE("/:id", cycleHandler.DeleteCycle)
	cycles.GET("/:id/transactions", transactionHandler.GetCycleTransactions)
	cycles.POST("/:id/withdrawals", farmerHandler.CreateWithdrawal)
	cycles.GET("/:id/withdrawals", farmerHandler.GetCycleWithdrawals)
	cycles.GET("/:id/programs", programHandler.GetCyclePrograms)
	cycles.GET("/:id/overview", reportHandler.GetCycleOverview)
	cycles.GET("/:id/treasury", reportHandler.GetCycleTreasury)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Farmer routes
	farmers := protected.Group("/farmers")
	farmers.POST("", farmerHandler.CreateFarmer)
	farmers.GET("", farmerHandler.GetFarmers)
	farmers.GET("/:id", farmerHandler.GetFarmer)
	farmers.PUT("/:id", farmerHandler.UpdateFarmer)
	farmers.DELETE("/:id", farmerHandler.DeleteFarmer)
	protected.DELETE("/withdrawals/:id", farmerHandler.DeleteWithdrawal)

	// Supplier routes
	suppliers := protected.Group("/suppliers")
	suppliers.POST("", supplierHandler.CreateSupplier)
	suppliers.GET("", supplierHandler.GetSuppliers)
	suppliers.GET("/:id", supplierHandler.GetSupplier)
	suppliers.PUT("/:id", supplierHandler.UpdateSupplier)
	suppliers.DELETE("/:id", supplierHandler.DeleteSupplier)
	suppliers.POST("/:id/payments", supplierHandler.CreatePayment)
	suppliers.GET("/:id/payments", supplierHandler.GetSupplierPayments)
	suppliers.GET("/:id/statement", reportHandler.GetSupplierStatement)
	protected.DELETE("/payments/:id", supplierHandler.DeletePayment)

	// Fertilization program routes
	programs := protected.Group("/programs")
	programs.POST("", programHandler.CreateProgram)
	programs.GET("/:id", programHandler.GetProgram)
	programs.PUT("/:id", programHandler.UpdateProgram)
	programs.DELETE("/:id", programHandler.DeleteProgram)
	programs.GET("/:id/summary", reportHandler.GetProgramSummary)

	// Advance routes
	advances := protected.Group("/advances")
	advances.POST("", advanceHandler.CreateAdvance)
	advances.GET("", advanceHandler.GetAdvances)
	advances.DELETE("/:id", advanceHandler.DeleteAdvance)

	// Settings routes
	settings := protected.Group("/settings")
	settings.GET("", settingsHandler.GetSettings)
	settings.PUT("", settingsHandler.UpdateSettings)
	settings.POST("/categories", settingsHandler.AddExpenseCategory)
	settings.PUT("/categories/reorder", settingsHandler.ReorderExpenseCategories)
	settings.PUT("/categories/:id", settingsHandler.UpdateExpenseCategory)
	settings.DELETE("/categories/:id", settingsHandler.DeleteExpenseCategory)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("/dashboard", reportHandler.GetDashboard)
	reports.GET("/alerts", reportHandler.GetAlerts)
	reports.GET("/farmers", reportHandler.GetFarmerAccounts)
	reports.GET("/treasury", reportHandler.GetTreasuryOverview)

	// Backup routes
	protected.GET("/backup", backupHandler.ExportBackup)
	protected.POST("/backup", backupHandler.ImportBackup)

	log.Infof("Starting Mashtal backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
