package main

import (
  "context"
  "errors"
  "fmt"
  "net/http"
  "os"
  "os/signal"
  "syscall"
  "time"
  "golang.org/x/sync/errgroup"
  "github.com/yungbote/photocatalog-backend/internal/clients/redis"
  "github.com/yungbote/photocatalog-backend/internal/config"
  "github.com/yungbote/photocatalog-backend/internal/db"
  "github.com/yungbote/photocatalog-backend/internal/handlers"
  "github.com/yungbote/photocatalog-backend/internal/logger"
  "github.com/yungbote/photocatalog-backend/internal/middleware"
  "github.com/yungbote/photocatalog-backend/internal/observability"
  "github.com/yungbote/photocatalog-backend/internal/server"
  "github.com/yungbote/photocatalog-backend/internal/services"
  "github.com/yungbote/photocatalog-backend/internal/repos"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Config
  log.Info("Loading configuration from main...")
  cfg, err := config.Load(log)
  if err != nil {
    log.Error("Could not load configuration", "error", err)
    os.Exit(1)
  }

  ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
  defer stop()

  // Tracing
  otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
    ServiceName: "photocatalog",
    Environment: os.Getenv("APP_ENV"),
    Version:     os.Getenv("APP_VERSION"),
  })

  // Postgres
  postgresService, err := db.NewPostgresService(log, cfg.Postgres)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  photographerRepo := repos.NewPhotographerRepo(thePG, log)
  photographRepo := repos.NewPhotographRepo(thePG, log)
  photoSourceRepo := repos.NewPhotoSourceRepo(thePG, log)

  // Verifiers
  localVerifier, err := services.NewLocalVerifier(cfg.Auth.JWTSecretKey, cfg.Auth.LocalIssuer, cfg.Auth.LocalAudience)
  if err != nil {
    log.Error("Could not init local token verifier", "error", err)
    os.Exit(1)
  }
  var externalVerifier services.TokenVerifier
  if cfg.Auth.ExternalPublicKey != "" {
    externalVerifier, err = services.NewExternalVerifier(cfg.Auth.ExternalPublicKey, cfg.Auth.ExternalIssuer, cfg.Auth.ExternalAudience)
    if err != nil {
      log.Error("Could not init external token verifier", "error", err)
      os.Exit(1)
    }
  } else {
    log.Warn("API_JWT_PUBLIC_KEY not set, external tokens will not be accepted")
  }

  // Services
  log.Info("Setting up Services from main...")
  identityService := services.NewIdentityService(thePG, log, userRepo, photographerRepo, localVerifier, externalVerifier)
  authService := services.NewAuthService(thePG, log, userRepo, photographerRepo, userTokenRepo, localVerifier, cfg.Auth.JWTSecretKey, cfg.Auth.LocalIssuer, cfg.Auth.LocalAudience, cfg.Auth.AccessTTL(), cfg.Auth.RefreshTTL())
  if err := authService.EnsureAdminUser(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
    log.Warn("Could not ensure admin user", "error", err)
  }
  var photoCache redis.PhotoCache
  if os.Getenv("REDIS_ADDR") != "" {
    photoCache, err = redis.NewPhotoCache(log)
    if err != nil {
      log.Warn("Could not init redis photo cache, continuing without it", "error", err)
      photoCache = nil
    }
  }
  photoService := services.NewPhotoService(thePG, log, photographRepo, photoSourceRepo, photographerRepo, photoCache)
  photographerService := services.NewPhotographerService(thePG, log, photographerRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  photoHandler := handlers.NewPhotoHandler(log, photoService)
  photographerHandler := handlers.NewPhotographerHandler(log, photographerService, photoService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, identityService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:         authHandler,
    AuthMiddleware:      authMiddleware,
    PhotoHandler:        photoHandler,
    PhotographerHandler: photographerHandler,
  })

  srv := &http.Server{
    Addr:    ":" + cfg.Port,
    Handler: router,
  }

  g, gctx := errgroup.WithContext(ctx)
  g.Go(func() error {
    log.Info("Server listening", "port", cfg.Port)
    if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
      return err
    }
    return nil
  })
  g.Go(func() error {
    <-gctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if photoCache != nil {
      _ = photoCache.Close()
    }
    if otelShutdown != nil {
      _ = otelShutdown(shutdownCtx)
    }
    return srv.Shutdown(shutdownCtx)
  })
  if err := g.Wait(); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
