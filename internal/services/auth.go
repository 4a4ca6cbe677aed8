package services

import (
  "context"
  "fmt"
  "time"
  "gorm.io/gorm"
  "golang.org/x/crypto/bcrypt"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "github.com/yungbote/photocatalog-backend/internal/logger"
  "github.com/yungbote/photocatalog-backend/internal/repos"
  "github.com/yungbote/photocatalog-backend/internal/types"
)

type AuthService interface {
  Login(ctx context.Context, email, password string) (string, string, error)
  Refresh(ctx context.Context, refreshToken string) (string, string, error)
  VerifyAccessToken(tokenString string) error
  EnsureAdminUser(ctx context.Context, email, password string) error
  GetAccessTTL() time.Duration
}

type authService struct {
  db                *gorm.DB
  log               *logger.Logger
  userRepo          repos.UserRepo
  photographerRepo  repos.PhotographerRepo
  userTokenRepo     repos.UserTokenRepo
  verifier          TokenVerifier
  jwtSecretKey      string
  issuer            string
  audience          string
  accessTTL         time.Duration
  refreshTTL        time.Duration
}

func NewAuthService(
  db                *gorm.DB,
  log               *logger.Logger,
  userRepo          repos.UserRepo,
  photographerRepo  repos.PhotographerRepo,
  userTokenRepo     repos.UserTokenRepo,
  verifier          TokenVerifier,
  jwtSecretKey      string,
  issuer            string,
  audience          string,
  accessTTL         time.Duration,
  refreshTTL        time.Duration,
) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    db:               db,
    log:              serviceLog,
    userRepo:         userRepo,
    photographerRepo: photographerRepo,
    userTokenRepo:    userTokenRepo,
    verifier:         verifier,
    jwtSecretKey:     jwtSecretKey,
    issuer:           issuer,
    audience:         audience,
    accessTTL:        accessTTL,
    refreshTTL:       refreshTTL,
  }
}

func (as *authService) Login(ctx context.Context, email, password string) (string, string, error) {
  users, usErr := as.userRepo.GetByEmails(ctx, nil, []string{email})
  if usErr != nil {
    return "", "", fmt.Errorf("Error retrieving user by email: %w", usErr)
  }
  if len(users) == 0 || users[0].Password == "" || !users[0].Active {
    return "", "", fmt.Errorf("invalid email or password")
  }

  user := users[0]
  if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
    return "", "", fmt.Errorf("invalid email or password")
  }

  var accessToken string
  var refreshToken string
  if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    foundTokens, ftErr := as.userTokenRepo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
    if ftErr != nil {
      return fmt.Errorf("Failed to check user tokens: %w", ftErr)
    }
    expired := []*types.UserToken{}
    for _, token := range foundTokens {
      if token != nil && token.ExpiresAt.Before(time.Now()) {
        expired = append(expired, token)
      }
    }
    if len(expired) > 0 {
      if dtErr := as.userTokenRepo.FullDeleteByTokens(ctx, tx, expired); dtErr != nil {
        return fmt.Errorf("Failed to delete expired user tokens: %w", dtErr)
      }
    }
    tok, genErr := as.issueAccessToken(user)
    if genErr != nil {
      return fmt.Errorf("Generate access token error: %w", genErr)
    }
    accessToken = tok
    refreshToken = uuid.New().String()
    userToken := types.UserToken{
      ID:           uuid.New(),
      UserID:       user.ID,
      AccessToken:  accessToken,
      RefreshToken: refreshToken,
      ExpiresAt:    time.Now().Add(as.refreshTTL),
    }
    if _, ctErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); ctErr != nil {
      as.log.Warn("Create User Token Error", "error", ctErr)
      return fmt.Errorf("Create User Token Error: %w", ctErr)
    }
    return nil
  }); err != nil {
    return "", "", err
  }
  return accessToken, refreshToken, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
  if refreshToken == "" {
    return "", "", fmt.Errorf("refresh token is required")
  }

  var accessToken string
  var newRefreshToken string
  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    foundTokens, ftErr := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{refreshToken})
    if ftErr != nil {
      as.log.Warn("Error fetching refresh token", "error", ftErr)
      return fmt.Errorf("Error fetching refresh token: %w", ftErr)
    }
    if len(foundTokens) == 0 {
      return fmt.Errorf("invalid refresh token")
    }
    existingToken := foundTokens[0]
    if existingToken.ExpiresAt.Before(time.Now()) {
      if dtErr := as.userTokenRepo.FullDeleteByTokens(ctx, tx, []*types.UserToken{existingToken}); dtErr != nil {
        as.log.Warn("Refresh token expired, error deleting", "error", dtErr)
        return fmt.Errorf("Refresh token expired, error deleting: %w", dtErr)
      }
      return fmt.Errorf("refresh token expired")
    }
    users, uErr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existingToken.UserID})
    if uErr != nil {
      return fmt.Errorf("Failed to load user for refresh: %w", uErr)
    }
    if len(users) == 0 || !users[0].Active {
      return fmt.Errorf("No active user found for the given refresh token")
    }
    user := users[0]
    tok, genErr := as.issueAccessToken(user)
    if genErr != nil {
      return fmt.Errorf("Failed to generate new access token: %w", genErr)
    }
    accessToken = tok
    newRefreshToken = uuid.New().String()
    newUserToken := types.UserToken{
      ID:           uuid.New(),
      UserID:       user.ID,
      AccessToken:  tok,
      RefreshToken: newRefreshToken,
      ExpiresAt:    time.Now().Add(as.refreshTTL),
    }
    if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&newUserToken}); cErr != nil {
      return fmt.Errorf("Failed to create new user token: %w", cErr)
    }
    if dErr := as.userTokenRepo.FullDeleteByTokens(ctx, tx, []*types.UserToken{existingToken}); dErr != nil {
      return fmt.Errorf("Failed to remove old refresh token: %w", dErr)
    }
    return nil
  })
  if err != nil {
    return "", "", err
  }
  return accessToken, newRefreshToken, nil
}

func (as *authService) VerifyAccessToken(tokenString string) error {
  _, err := as.verifier.Verify(tokenString)
  return err
}

// EnsureAdminUser provisions a password-bearing admin account (and its
// photographer record) at startup. A no-op when credentials are not
// configured or the account already exists.
func (as *authService) EnsureAdminUser(ctx context.Context, email, password string) error {
  if email == "" || password == "" {
    return nil
  }
  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    users, uErr := as.userRepo.GetByEmails(ctx, tx, []string{email})
    if uErr != nil {
      return fmt.Errorf("Failed to look up admin user: %w", uErr)
    }
    var user *types.User
    if len(users) > 0 {
      user = users[0]
    } else {
      hash, hErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
      if hErr != nil {
        return fmt.Errorf("Failed to hash admin password: %w", hErr)
      }
      user = &types.User{
        ID:       uuid.New(),
        Username: email,
        Email:    email,
        Password: string(hash),
        Active:   true,
      }
      if _, cErr := as.userRepo.Create(ctx, tx, []*types.User{user}); cErr != nil {
        return fmt.Errorf("Failed to create admin user: %w", cErr)
      }
      as.log.Info("Created admin user", "email", email)
    }
    existing, pErr := as.photographerRepo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
    if pErr != nil {
      return fmt.Errorf("Failed to look up admin photographer: %w", pErr)
    }
    if len(existing) == 0 {
      if _, cpErr := as.photographerRepo.Create(ctx, tx, []*types.Photographer{{
        ID:     uuid.New(),
        UserID: user.ID,
      }}); cpErr != nil {
        return fmt.Errorf("Failed to create admin photographer: %w", cpErr)
      }
    }
    return nil
  })
}

func (as *authService) issueAccessToken(user *types.User) (string, error) {
  claims := jwt.RegisteredClaims{
    Subject:   user.ID.String(),
    Issuer:    as.issuer,
    Audience:  jwt.ClaimStrings{as.audience},
    ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
    IssuedAt:  jwt.NewNumericDate(time.Now()),
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}
