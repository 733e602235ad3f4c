package main

import (
	"log"
	"time"

	"catalog-app/config"
	"catalog-app/database"
	routes "catalog-app/internal/app/http"
	"catalog-app/internal/app/http/middleware"
	"catalog-app/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	appLog, err := logger.New("dev")
	if err != nil {
		log.Fatal("Failed to init logger:", err)
	}
	defer appLog.Sync()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogMiddleware(appLog))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	// uploaded images are served straight off the local store
	r.Static("/uploads", config.UPLOAD_DIR)

	if err := r.Run(":" + config.PORT); err != nil {
		log.Fatal("Server stopped:", err)
	}
}
