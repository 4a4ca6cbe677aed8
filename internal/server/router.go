package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/yungbote/photocatalog-backend/internal/handlers"
  "github.com/yungbote/photocatalog-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler           *handlers.AuthHandler
  AuthMiddleware        *middleware.AuthMiddleware
  PhotoHandler          *handlers.PhotoHandler
  PhotographerHandler   *handlers.PhotographerHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(otelgin.Middleware("photocatalog"))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  api := router.Group("/api")
  {
    api.GET("/health", handlers.HealthCheck)
    api.POST("/token", cfg.AuthHandler.ObtainToken)
    api.POST("/token/refresh", cfg.AuthHandler.RefreshToken)
    api.POST("/token/verify", cfg.AuthHandler.VerifyToken)
  }

// ===============
// || Protected ||
// ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Photos
  protected.GET("/photos", cfg.PhotoHandler.ListPhotos)
  protected.POST("/photos", cfg.PhotoHandler.CreatePhoto)
  protected.GET("/photos/:photo_id", cfg.PhotoHandler.GetPhoto)
  protected.PATCH("/photos/:photo_id", cfg.PhotoHandler.UpdatePhoto)
  // Photographers
  protected.GET("/photographers", cfg.PhotographerHandler.ListPhotographers)
  protected.GET("/photographers/:photographer_id", cfg.PhotographerHandler.GetPhotographer)
  protected.GET("/photographers/:photographer_id/photos", cfg.PhotographerHandler.ListPhotographerPhotos)

  return router
}
