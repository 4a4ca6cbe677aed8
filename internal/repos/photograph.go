package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/photocatalog-backend/internal/logger"
  "github.com/yungbote/photocatalog-backend/internal/types"
)

type PhotographRepo interface {
  Create(ctx context.Context, tx *gorm.DB, photographs []*types.Photograph) ([]*types.Photograph, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, photographIDs []uuid.UUID) ([]*types.Photograph, error)
  List(ctx context.Context, tx *gorm.DB, photographerID *uuid.UUID) ([]*types.Photograph, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, photographID uuid.UUID, fields map[string]any) error
}

type photographRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPhotographRepo(db *gorm.DB, baseLog *logger.Logger) PhotographRepo {
  repoLog := baseLog.With("repo", "PhotographRepo")
  return &photographRepo{db: db, log: repoLog}
}

func (pr *photographRepo) Create(ctx context.Context, tx *gorm.DB, photographs []*types.Photograph) ([]*types.Photograph, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(photographs) == 0 {
    return []*types.Photograph{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&photographs).Error; err != nil {
    return nil, err
  }
  return photographs, nil
}

func (pr *photographRepo) GetByIDs(ctx context.Context, tx *gorm.DB, photographIDs []uuid.UUID) ([]*types.Photograph, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Photograph
  if len(photographIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Preload("Source").
    Preload("Photographer").
    Preload("Photographer.User").
    Where("id IN ?", photographIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *photographRepo) List(ctx context.Context, tx *gorm.DB, photographerID *uuid.UUID) ([]*types.Photograph, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  query := transaction.WithContext(ctx).
    Preload("Source").
    Preload("Photographer").
    Preload("Photographer.User").
    Order("created_at ASC")
  if photographerID != nil {
    query = query.Where("photographer_id = ?", *photographerID)
  }

  var results []*types.Photograph
  if err := query.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *photographRepo) UpdateFields(ctx context.Context, tx *gorm.DB, photographID uuid.UUID, fields map[string]any) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(fields) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Model(&types.Photograph{}).
    Where("id = ?", photographID).
    Updates(fields).Error
}
