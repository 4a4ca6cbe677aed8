package middleware

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/photocatalog-backend/internal/logger"
  "github.com/yungbote/photocatalog-backend/internal/platform/apierr"
  "github.com/yungbote/photocatalog-backend/internal/requestdata"
  "github.com/yungbote/photocatalog-backend/internal/services"
)

type AuthMiddleware struct {
  log               *logger.Logger
  identityService   services.IdentityService
}

func NewAuthMiddleware(log *logger.Logger, identityService services.IdentityService) *AuthMiddleware {
  middlewareLogger := log.With("Middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLogger, identityService: identityService}
}

// RequireAuth resolves the bearer token through the identity backend chain.
// No resolvable identity aborts with 401; a token that verified but carries a
// broken identity claim aborts with the specific error code.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    user, err := am.identityService.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
    if err != nil {
      var apiErr *apierr.Error
      if errors.As(err, &apiErr) {
        c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr.Error(), "code": apiErr.Code})
        return
      }
      am.log.Warn("Authentication failed", "error", err)
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
      return
    }
    if user == nil {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
      return
    }
    ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
      UserID:   user.ID,
      Username: user.Username,
    })
    c.Request = c.Request.WithContext(ctx)
    c.Next()
  }
}
