package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/photocatalog-backend/internal/logger"
  "github.com/yungbote/photocatalog-backend/internal/services"
)

type PhotographerHandler struct {
  log                   *logger.Logger
  photographerService   services.PhotographerService
  photoService          services.PhotoService
}

func NewPhotographerHandler(log *logger.Logger, photographerService services.PhotographerService, photoService services.PhotoService) *PhotographerHandler {
  return &PhotographerHandler{
    log:                 log.With("handler", "PhotographerHandler"),
    photographerService: photographerService,
    photoService:        photoService,
  }
}

func (ph *PhotographerHandler) ListPhotographers(c *gin.Context) {
  photographers, err := ph.photographerService.List(c.Request.Context())
  if err != nil {
    ph.log.Warn("Failed to list photographers", "error", err)
    RespondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal server error"))
    return
  }
  RespondOK(c, NewPhotographerViews(photographers))
}

func (ph *PhotographerHandler) GetPhotographer(c *gin.Context) {
  photographerID, err := uuid.Parse(c.Param("photographer_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_photographer_id", errors.New("photographer_id must be a uuid"))
    return
  }
  photographer, err := ph.photographerService.Get(c.Request.Context(), photographerID)
  if err != nil {
    ph.log.Warn("Failed to load photographer", "error", err)
    RespondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal server error"))
    return
  }
  if photographer == nil {
    RespondError(c, http.StatusNotFound, "not_found", errors.New("photographer not found"))
    return
  }
  RespondOK(c, NewPhotographerView(photographer))
}

func (ph *PhotographerHandler) ListPhotographerPhotos(c *gin.Context) {
  photographerID, err := uuid.Parse(c.Param("photographer_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_photographer_id", errors.New("photographer_id must be a uuid"))
    return
  }
  photographer, err := ph.photographerService.Get(c.Request.Context(), photographerID)
  if err != nil {
    ph.log.Warn("Failed to load photographer", "error", err)
    RespondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal server error"))
    return
  }
  if photographer == nil {
    RespondError(c, http.StatusNotFound, "not_found", errors.New("photographer not found"))
    return
  }
  result := ph.photoService.List(c.Request.Context(), &photographerID)
  if !result.OK() {
    RespondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal server error"))
    return
  }
  RespondOK(c, NewPhotoViews(result.Photos))
}
