package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/photocatalog-backend/internal/services"
)

type AuthHandler struct {
  authService       services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) ObtainToken(c *gin.Context) {
  var req struct {
    Email         string      `json:"email"`
    Password      string      `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  access, refresh, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
    return
  }
  accessTTL := ah.authService.GetAccessTTL()
  expiresIn := int(accessTTL.Seconds())
  c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh, "expires_in": expiresIn})
}

func (ah *AuthHandler) RefreshToken(c *gin.Context) {
  var req struct {
    Refresh       string      `json:"refresh"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  access, refresh, err := ah.authService.Refresh(c.Request.Context(), req.Refresh)
  if err != nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
    return
  }
  accessTTL := ah.authService.GetAccessTTL()
  expiresIn := int(accessTTL.Seconds())
  c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh, "expires_in": expiresIn})
}

func (ah *AuthHandler) VerifyToken(c *gin.Context) {
  var req struct {
    Token         string      `json:"token"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  if err := ah.authService.VerifyAccessToken(req.Token); err != nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "token is invalid or expired"})
    return
  }
  c.JSON(http.StatusOK, gin.H{})
}
