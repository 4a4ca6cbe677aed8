package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "github.com/yungbote/photocatalog-backend/internal/config"
  "github.com/yungbote/photocatalog-backend/internal/logger"
  "github.com/yungbote/photocatalog-backend/internal/types"
)

type PostgresService struct {
  db *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger, cfg config.Postgres) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

  log.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
    TranslateError: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.Photographer{},
    &types.Photograph{},
    &types.PhotoSource{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  s.log.Info("Configuring foreign key relationships for postgres tables...")
  constraints := []struct {
    table string
    name  string
    ddl   string
  }{
    {
      table: "user_token",
      name:  "fk_user_token_user_id",
      ddl:   `FOREIGN KEY ("user_id") REFERENCES "user"("id") ON DELETE CASCADE`,
    },
    {
      table: "photographer",
      name:  "fk_photographer_user_id",
      ddl:   `FOREIGN KEY ("user_id") REFERENCES "user"("id") ON DELETE CASCADE`,
    },
    {
      table: "photograph",
      name:  "fk_photograph_photographer_id",
      ddl:   `FOREIGN KEY ("photographer_id") REFERENCES "photographer"("id") ON DELETE CASCADE`,
    },
    {
      table: "photo_source",
      name:  "fk_photo_source_photograph_id",
      ddl:   `FOREIGN KEY ("photograph_id") REFERENCES "photograph"("id") ON DELETE CASCADE`,
    },
  }
  for _, c := range constraints {
    drop := fmt.Sprintf(`ALTER TABLE "%s" DROP CONSTRAINT IF EXISTS "%s"`, c.table, c.name)
    if err := s.db.Exec(drop).Error; err != nil {
      return fmt.Errorf("Failed to drop %s: %w", c.name, err)
    }
    add := fmt.Sprintf(`ALTER TABLE "%s" ADD CONSTRAINT "%s" %s`, c.table, c.name, c.ddl)
    if err := s.db.Exec(add).Error; err != nil {
      return fmt.Errorf("Failed to add %s: %w", c.name, err)
    }
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
