package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/SantiagoMGS/mipc-api/internal/config"
	"github.com/SantiagoMGS/mipc-api/internal/middleware"
	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"github.com/SantiagoMGS/mipc-api/internal/taller/handler"
	"github.com/SantiagoMGS/mipc-api/internal/taller/repository"
	"github.com/SantiagoMGS/mipc-api/internal/taller/service"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// .env es opcional; en despliegue las variables vienen del entorno
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting mipc-api service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := autoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, rdb, cfg)
	handlers := handler.NewHandlers(services, cfg)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Customer{},
		&entity.DeviceType{},
		&entity.Device{},
		&entity.Item{},
		&entity.ServiceOrder{},
		&entity.ServiceOrderItem{},
		&entity.OrderStatusLog{},
		&entity.Payment{},
		&entity.Task{},
		&entity.TaskItem{},
	)
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	{
		// rutas públicas
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
			auth.POST("/logout", h.Auth.Logout)
		}

		// rutas autenticadas
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			customers := authorized.Group("/customers")
			{
				customers.GET("", h.Customer.List)
				customers.POST("", h.Customer.Create)
				customers.GET("/:id", h.Customer.Get)
				customers.PATCH("/:id", h.Customer.Update)
				customers.DELETE("/:id", h.Customer.Deactivate)
				customers.POST("/:id/reactivate", h.Customer.Reactivate)
				customers.GET("/:id/devices", h.Customer.Devices)
			}

			devices := authorized.Group("/devices")
			{
				devices.GET("", h.Device.List)
				devices.POST("", h.Device.Create)
				devices.GET("/:id", h.Device.Get)
				devices.PATCH("/:id", h.Device.Update)
				devices.DELETE("/:id", h.Device.Deactivate)
				devices.POST("/:id/reactivate", h.Device.Reactivate)
			}

			deviceTypes := authorized.Group("/device-types")
			{
				deviceTypes.GET("", h.Device.ListTypes)
				deviceTypes.POST("", h.Device.CreateType)
				deviceTypes.PATCH("/:id", h.Device.UpdateType)
				deviceTypes.DELETE("/:id", h.Device.DeleteType)
			}

			items := authorized.Group("/items")
			{
				items.GET("", h.Item.List)
				items.POST("", h.Item.Create)
				items.GET("/:id", h.Item.Get)
				items.PATCH("/:id", h.Item.Update)
				items.DELETE("/:id", h.Item.Delete)
				items.POST("/:id/reactivate", h.Item.Reactivate)
			}

			orders := authorized.Group("/service-orders")
			{
				orders.GET("", h.Order.List)
				orders.POST("", h.Order.Create)
				orders.GET("/:id", h.Order.Get)
				orders.PATCH("/:id", h.Order.Update)
				orders.POST("/:id/status", h.Order.ChangeStatus)
				orders.GET("/:id/status-options", h.Order.StatusOptions)
				orders.GET("/:id/history", h.Order.History)

				orders.POST("/:id/items", h.Order.AddItem)
				orders.PATCH("/:id/items/:itemId", h.Order.UpdateItem)
				orders.DELETE("/:id/items/:itemId", h.Order.RemoveItem)

				orders.GET("/:id/payments", h.Order.ListPayments)
				orders.POST("/:id/payments", h.Order.AddPayment)
				orders.DELETE("/:id/payments/:paymentId", h.Order.RemovePayment)
			}

			tasks := authorized.Group("/tasks")
			{
				tasks.GET("", h.Task.List)
				tasks.POST("", h.Task.Create)
				tasks.GET("/:id", h.Task.Get)
				tasks.PATCH("/:id", h.Task.Update)
				tasks.DELETE("/:id", h.Task.Delete)
			}

			authorized.GET("/users/technicians", h.User.Technicians)

			// administración de usuarios, solo ADMIN
			users := authorized.Group("/users")
			users.Use(middleware.RequireRole(entity.RoleAdmin))
			{
				users.GET("", h.User.List)
				users.POST("", h.User.Create)
				users.GET("/:id", h.User.Get)
				users.PATCH("/:id", h.User.Update)
				users.DELETE("/:id", h.User.Delete)
				users.POST("/:id/reactivate", h.User.Reactivate)
			}

			analytics := authorized.Group("/analytics")
			{
				analytics.GET("/summary", h.Analytics.Summary)
				analytics.GET("/orders-by-status", h.Analytics.OrdersByStatus)
				analytics.GET("/orders-by-priority", h.Analytics.OrdersByPriority)
				analytics.GET("/revenue", h.Analytics.Revenue)
				analytics.GET("/payment-methods", h.Analytics.PaymentMethods)
				analytics.GET("/top-items", h.Analytics.TopItems)
				analytics.GET("/top-customers", h.Analytics.TopCustomers)
				analytics.GET("/technician-performance", h.Analytics.TechnicianPerformance)
				analytics.GET("/new-customers", h.Analytics.NewCustomers)
				analytics.GET("/repair-times", h.Analytics.RepairTimes)
				analytics.GET("/device-types", h.Analytics.DeviceTypes)
			}
		}
	}
}
