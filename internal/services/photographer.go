package services

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/photocatalog-backend/internal/logger"
  "github.com/yungbote/photocatalog-backend/internal/repos"
  "github.com/yungbote/photocatalog-backend/internal/types"
)

type PhotographerService interface {
  List(ctx context.Context) ([]*types.Photographer, error)
  Get(ctx context.Context, photographerID uuid.UUID) (*types.Photographer, error)
}

type photographerService struct {
  db                *gorm.DB
  log               *logger.Logger
  photographerRepo  repos.PhotographerRepo
}

func NewPhotographerService(db *gorm.DB, log *logger.Logger, photographerRepo repos.PhotographerRepo) PhotographerService {
  serviceLog := log.With("service", "PhotographerService")
  return &photographerService{db: db, log: serviceLog, photographerRepo: photographerRepo}
}

func (ps *photographerService) List(ctx context.Context) ([]*types.Photographer, error) {
  return ps.photographerRepo.List(ctx, nil)
}

// Get returns (nil, nil) when no photographer exists for the id.
func (ps *photographerService) Get(ctx context.Context, photographerID uuid.UUID) (*types.Photographer, error) {
  photographers, err := ps.photographerRepo.GetByIDs(ctx, nil, []uuid.UUID{photographerID})
  if err != nil {
    return nil, err
  }
  if len(photographers) == 0 {
    return nil, nil
  }
  return photographers[0], nil
}
