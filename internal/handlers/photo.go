package handlers

import (
  "errors"
  "io"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/photocatalog-backend/internal/logger"
  "github.com/yungbote/photocatalog-backend/internal/services"
)

type PhotoHandler struct {
  log               *logger.Logger
  photoService      services.PhotoService
}

func NewPhotoHandler(log *logger.Logger, photoService services.PhotoService) *PhotoHandler {
  return &PhotoHandler{log: log.With("handler", "PhotoHandler"), photoService: photoService}
}

func (ph *PhotoHandler) ListPhotos(c *gin.Context) {
  var photographerID *uuid.UUID
  if raw := c.Query("photographer_id"); raw != "" {
    id, err := uuid.Parse(raw)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "invalid_photographer_id", errors.New("photographer_id must be a uuid"))
      return
    }
    photographerID = &id
  }
  result := ph.photoService.List(c.Request.Context(), photographerID)
  if !result.OK() {
    ph.respondFailure(c, result)
    return
  }
  RespondOK(c, NewPhotoViews(result.Photos))
}

func (ph *PhotoHandler) GetPhoto(c *gin.Context) {
  photoID, err := uuid.Parse(c.Param("photo_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_photo_id", errors.New("photo_id must be a uuid"))
    return
  }
  result := ph.photoService.Get(c.Request.Context(), photoID)
  if !result.OK() {
    ph.respondFailure(c, result)
    return
  }
  RespondOK(c, NewPhotoDetailView(result.Photo))
}

func (ph *PhotoHandler) CreatePhoto(c *gin.Context) {
  raw, err := io.ReadAll(c.Request.Body)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("could not read request body"))
    return
  }
  input, verrs := services.ValidatePhotographCreate(raw)
  if len(verrs) > 0 {
    RespondValidationErrors(c, verrs)
    return
  }
  result := ph.photoService.Create(c.Request.Context(), input)
  if !result.OK() {
    ph.respondFailure(c, result)
    return
  }
  c.JSON(http.StatusCreated, NewPhotoDetailView(result.Photo))
}

func (ph *PhotoHandler) UpdatePhoto(c *gin.Context) {
  photoID, err := uuid.Parse(c.Param("photo_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_photo_id", errors.New("photo_id must be a uuid"))
    return
  }
  raw, err := io.ReadAll(c.Request.Body)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("could not read request body"))
    return
  }
  patch, verrs := services.ValidatePhotographUpdate(raw)
  if len(verrs) > 0 {
    RespondValidationErrors(c, verrs)
    return
  }
  result := ph.photoService.Update(c.Request.Context(), photoID, patch)
  if !result.OK() {
    ph.respondFailure(c, result)
    return
  }
  RespondOK(c, NewPhotoDetailView(result.Photo))
}

// respondFailure is the single outcome-to-status translation point.
func (ph *PhotoHandler) respondFailure(c *gin.Context, result services.OperationResult) {
  switch result.Outcome {
  case services.OutcomeInvalid:
    RespondValidationErrors(c, result.Errors)
  case services.OutcomeNotFound:
    c.JSON(http.StatusNotFound, gin.H{"errors": result.Errors})
  case services.OutcomeConflict:
    c.JSON(http.StatusConflict, gin.H{"errors": result.Errors})
  default:
    RespondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal server error"))
  }
}
