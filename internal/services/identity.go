package services

import (
  "context"
  "errors"
  "net/http"
  "strings"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/photocatalog-backend/internal/logger"
  "github.com/yungbote/photocatalog-backend/internal/platform/apierr"
  "github.com/yungbote/photocatalog-backend/internal/repos"
  "github.com/yungbote/photocatalog-backend/internal/types"
)

var (
  // ErrMissingSubjectClaim is raised when a token passes cryptographic checks
  // but carries no usable subject claim. Unlike a signature failure it is a
  // hard authentication error, not a fall-through to the next backend.
  ErrMissingSubjectClaim = apierr.New(http.StatusUnauthorized, "missing_subject_claim", errors.New("missing subject claim"))
  // ErrInvalidSubjectClaim is raised when a locally issued token carries a
  // subject that is not a user id.
  ErrInvalidSubjectClaim = apierr.New(http.StatusUnauthorized, "invalid_subject_claim", errors.New("invalid subject claim"))
)

const externalUsernamePrefix = "ext:"

// IdentityService resolves the caller identity from an Authorization header.
// Authenticate returns (nil, nil) when no backend accepts the token, so the
// transport layer can deny the request with a uniform 401.
type IdentityService interface {
  Authenticate(ctx context.Context, authorizationHeader string) (*types.User, error)
}

type identityBackend struct {
  name      string
  verifier  TokenVerifier
  resolve   func(ctx context.Context, claims *Claims) (*types.User, error)
}

type identityService struct {
  db                *gorm.DB
  log               *logger.Logger
  userRepo          repos.UserRepo
  photographerRepo  repos.PhotographerRepo
  backends          []identityBackend
}

// NewIdentityService builds the ordered backend chain: locally issued tokens
// first, externally issued tokens second. The external verifier may be nil
// when no external trust is configured.
func NewIdentityService(
  db                *gorm.DB,
  log               *logger.Logger,
  userRepo          repos.UserRepo,
  photographerRepo  repos.PhotographerRepo,
  local             TokenVerifier,
  external          TokenVerifier,
) IdentityService {
  serviceLog := log.With("service", "IdentityService")
  is := &identityService{
    db:               db,
    log:              serviceLog,
    userRepo:         userRepo,
    photographerRepo: photographerRepo,
  }
  is.backends = append(is.backends, identityBackend{name: "local", verifier: local, resolve: is.resolveLocal})
  if external != nil {
    is.backends = append(is.backends, identityBackend{name: "external", verifier: external, resolve: is.resolveExternal})
  }
  return is
}

func (is *identityService) Authenticate(ctx context.Context, authorizationHeader string) (*types.User, error) {
  if !strings.HasPrefix(authorizationHeader, "Bearer ") {
    return nil, nil
  }
  raw := strings.TrimSpace(authorizationHeader[len("Bearer "):])
  if raw == "" {
    return nil, nil
  }

  for _, backend := range is.backends {
    claims, err := backend.verifier.Verify(raw)
    if err != nil {
      // Not a token for this backend; let the next one try.
      is.log.Debug("Token rejected by backend", "backend", backend.name, "error", err)
      continue
    }
    return backend.resolve(ctx, claims)
  }
  return nil, nil
}

func (is *identityService) resolveLocal(ctx context.Context, claims *Claims) (*types.User, error) {
  if claims.Subject == "" {
    return nil, ErrMissingSubjectClaim
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return nil, ErrInvalidSubjectClaim
  }
  users, err := is.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, err
  }
  if len(users) == 0 || !users[0].Active {
    return nil, nil
  }
  return users[0], nil
}

func (is *identityService) resolveExternal(ctx context.Context, claims *Claims) (*types.User, error) {
  sub := firstNonEmpty(claims.Subject, claims.UserID, claims.UID)
  if sub == "" {
    return nil, ErrMissingSubjectClaim
  }

  var resolved *types.User
  err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    candidate := &types.User{
      ID:       uuid.New(),
      Username: externalUsernamePrefix + sub,
      Email:    claims.Email,
      Active:   true,
    }
    user, grErr := is.userRepo.GetOrCreateByUsername(ctx, tx, candidate)
    if grErr != nil {
      return grErr
    }
    // Explicit post-create step: every user owns a photographer record.
    if epErr := is.ensurePhotographer(ctx, tx, user); epErr != nil {
      return epErr
    }
    resolved = user
    return nil
  })
  if err != nil {
    is.log.Warn("Failed to resolve external identity", "error", err)
    return nil, err
  }
  if !resolved.Active {
    return nil, nil
  }
  return resolved, nil
}

func (is *identityService) ensurePhotographer(ctx context.Context, tx *gorm.DB, user *types.User) error {
  existing, err := is.photographerRepo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
  if err != nil {
    return err
  }
  if len(existing) > 0 {
    return nil
  }
  _, err = is.photographerRepo.Create(ctx, tx, []*types.Photographer{{
    ID:     uuid.New(),
    UserID: user.ID,
  }})
  return err
}

func firstNonEmpty(values ...string) string {
  for _, v := range values {
    if v != "" {
      return v
    }
  }
  return ""
}
