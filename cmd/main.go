package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"backoffice-service/internal/clients"
	"backoffice-service/internal/config"
	"backoffice-service/internal/handlers"
	"backoffice-service/internal/importer"
	"backoffice-service/internal/middleware"
	"backoffice-service/internal/repository"
)

// @title Back Office API
// @version 1.0.0
// @description Retail and vehicle rental back office with bulk spreadsheet import

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize Redis client
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		redisOpts = &redis.Options{
			Addr: "localhost:6379",
		}
	}
	redisClient := redis.NewClient(redisOpts)

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
	} else {
		log.Println("✓ Redis connected successfully")
	}
	cancel()

	// Initialize repositories
	productsRepo := repository.NewProductsRepository(db, redisClient)
	customersRepo := repository.NewCustomersRepository(db)
	vehiclesRepo := repository.NewVehiclesRepository(db)
	salesRepo := repository.NewSalesRepository(db)
	rentalsRepo := repository.NewRentalsRepository(db)

	// Initialize clients
	notificationClient := clients.NewNotificationClient(cfg.NotificationServiceURL)

	// Initialize import engine
	importService := importer.NewService(productsRepo, customersRepo, vehiclesRepo, salesRepo, notificationClient, logger)

	// Initialize handlers
	productsHandler := handlers.NewProductsHandler(productsRepo)
	customersHandler := handlers.NewCustomersHandler(customersRepo)
	vehiclesHandler := handlers.NewVehiclesHandler(vehiclesRepo)
	salesHandler := handlers.NewSalesHandler(salesRepo, customersRepo)
	rentalsHandler := handlers.NewRentalsHandler(rentalsRepo, vehiclesRepo)
	importHandler := handlers.NewImportHandler(importService, cfg.MaxImportFileBytes)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS())

	// Health check endpoints
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)

	// API routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", productsHandler.GetProducts)
			products.GET("/:id", productsHandler.GetProduct)
			products.POST("", productsHandler.CreateProduct)
			products.PUT("/:id", productsHandler.UpdateProduct)
			products.DELETE("/:id", productsHandler.DeleteProduct)
		}

		customers := v1.Group("/customers")
		{
			customers.GET("", customersHandler.GetCustomers)
			customers.GET("/:id", customersHandler.GetCustomer)
			customers.POST("", customersHandler.CreateCustomer)
			customers.PUT("/:id", customersHandler.UpdateCustomer)
			customers.DELETE("/:id", customersHandler.DeleteCustomer)
		}

		vehicles := v1.Group("/vehicles")
		{
			vehicles.GET("", vehiclesHandler.GetVehicles)
			vehicles.GET("/:id", vehiclesHandler.GetVehicle)
			vehicles.POST("", vehiclesHandler.CreateVehicle)
			vehicles.PUT("/:id", vehiclesHandler.UpdateVehicle)
			vehicles.DELETE("/:id", vehiclesHandler.DeleteVehicle)
		}

		sales := v1.Group("/sales")
		{
			sales.GET("", salesHandler.GetSales)
			sales.GET("/:id", salesHandler.GetSale)
			sales.POST("", salesHandler.CreateSale)
		}

		rentals := v1.Group("/rentals")
		{
			rentals.GET("", rentalsHandler.GetRentals)
			rentals.GET("/:id", rentalsHandler.GetRental)
			rentals.POST("", rentalsHandler.CreateRental)
			rentals.POST("/:id/close", rentalsHandler.CloseRental)
		}

		v1.POST("/imports", importHandler.ImportSpreadsheet)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Back office service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-quit
	log.Println("Shutting down backoffice-service...")

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Back office service stopped")
}
