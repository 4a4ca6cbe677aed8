package config

import (
  "fmt"
  "os"
  "time"
  "gopkg.in/yaml.v3"
  "github.com/yungbote/photocatalog-backend/internal/logger"
  "github.com/yungbote/photocatalog-backend/internal/utils"
)

type Postgres struct {
  Host        string      `yaml:"host"`
  Port        string      `yaml:"port"`
  User        string      `yaml:"user"`
  Password    string      `yaml:"password"`
  Name        string      `yaml:"name"`
}

type Auth struct {
  JWTSecretKey            string      `yaml:"jwt_secret_key"`
  LocalIssuer             string      `yaml:"local_issuer"`
  LocalAudience           string      `yaml:"local_audience"`
  AccessTokenTTLSeconds   int         `yaml:"access_token_ttl_seconds"`
  RefreshTokenTTLSeconds  int         `yaml:"refresh_token_ttl_seconds"`
  ExternalPublicKey       string      `yaml:"external_public_key"`
  ExternalIssuer          string      `yaml:"external_issuer"`
  ExternalAudience        string      `yaml:"external_audience"`
}

func (a Auth) AccessTTL() time.Duration {
  return time.Duration(a.AccessTokenTTLSeconds) * time.Second
}

func (a Auth) RefreshTTL() time.Duration {
  return time.Duration(a.RefreshTokenTTLSeconds) * time.Second
}

type Admin struct {
  Email       string      `yaml:"email"`
  Password    string      `yaml:"password"`
}

type Config struct {
  Port        string      `yaml:"port"`
  Postgres    Postgres    `yaml:"postgres"`
  Auth        Auth        `yaml:"auth"`
  Admin       Admin       `yaml:"admin"`
}

func defaults() Config {
  return Config{
    Port: "8080",
    Postgres: Postgres{
      Host: "localhost",
      Port: "5432",
      User: "postgres",
      Name: "photocatalog",
    },
    Auth: Auth{
      JWTSecretKey:           "defaultsecret",
      LocalIssuer:            "photocatalog.api",
      LocalAudience:          "photocatalog",
      AccessTokenTTLSeconds:  3600,
      RefreshTokenTTLSeconds: 86400,
      ExternalIssuer:         "frontend.photos",
      ExternalAudience:       "backend.photos",
    },
  }
}

// Load resolves configuration in three layers: built-in defaults, an optional
// YAML file pointed at by CONFIG_FILE, then environment variable overrides.
func Load(log *logger.Logger) (Config, error) {
  cfg := defaults()

  path := utils.GetEnv("CONFIG_FILE", "", log)
  if path != "" {
    raw, err := os.ReadFile(path)
    if err != nil {
      return Config{}, fmt.Errorf("read config file %s: %w", path, err)
    }
    if err := yaml.Unmarshal(raw, &cfg); err != nil {
      return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
    }
    log.Info("Loaded config file", "path", path)
  }

  cfg.Port = utils.GetEnv("PORT", cfg.Port, log)
  cfg.Postgres.Host = utils.GetEnv("POSTGRES_HOST", cfg.Postgres.Host, log)
  cfg.Postgres.Port = utils.GetEnv("POSTGRES_PORT", cfg.Postgres.Port, log)
  cfg.Postgres.User = utils.GetEnv("POSTGRES_USER", cfg.Postgres.User, log)
  cfg.Postgres.Password = utils.GetEnv("POSTGRES_PASSWORD", cfg.Postgres.Password, nil)
  cfg.Postgres.Name = utils.GetEnv("POSTGRES_NAME", cfg.Postgres.Name, log)
  cfg.Auth.JWTSecretKey = utils.GetEnv("JWT_SECRET_KEY", cfg.Auth.JWTSecretKey, nil)
  cfg.Auth.LocalIssuer = utils.GetEnv("JWT_ISSUER", cfg.Auth.LocalIssuer, log)
  cfg.Auth.LocalAudience = utils.GetEnv("JWT_AUDIENCE", cfg.Auth.LocalAudience, log)
  cfg.Auth.AccessTokenTTLSeconds = utils.GetEnvAsInt("ACCESS_TOKEN_TTL", cfg.Auth.AccessTokenTTLSeconds, log)
  cfg.Auth.RefreshTokenTTLSeconds = utils.GetEnvAsInt("REFRESH_TOKEN_TTL", cfg.Auth.RefreshTokenTTLSeconds, log)
  cfg.Auth.ExternalPublicKey = utils.GetEnv("API_JWT_PUBLIC_KEY", cfg.Auth.ExternalPublicKey, nil)
  cfg.Auth.ExternalIssuer = utils.GetEnv("API_JWT_ISSUER", cfg.Auth.ExternalIssuer, log)
  cfg.Auth.ExternalAudience = utils.GetEnv("API_JWT_AUDIENCE", cfg.Auth.ExternalAudience, log)
  cfg.Admin.Email = utils.GetEnv("ADMIN_EMAIL", cfg.Admin.Email, log)
  cfg.Admin.Password = utils.GetEnv("ADMIN_PASSWORD", cfg.Admin.Password, nil)

  return cfg, nil
}
