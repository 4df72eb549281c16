package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aissouss/minishop-api/config"
	"github.com/aissouss/minishop-api/models"
	"github.com/aissouss/minishop-api/routes"
	"github.com/aissouss/minishop-api/services"
	"github.com/aissouss/minishop-api/session"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.Info("Starting minishop API...")

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Config load failed: %v", err)
	}

	db := initDatabase(cfg)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
	); err != nil {
		logrus.Fatalf("AutoMigrate failed: %v", err)
	}

	// Wired once here, injected into the handlers. No global service state.
	sessions := session.NewStore(cfg.SessionTTL)
	catalog := services.NewCatalogService(db, cfg.CatalogTimeout)
	carts := services.NewCartService(catalog)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, routes.Deps{
		DB:        db,
		Sessions:  sessions,
		Carts:     carts,
		Catalog:   catalog,
		JWTSecret: cfg.JWTSecret,
	})

	logrus.Infof("Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("DB connection failed: %v", err)
	}
	return db
}
