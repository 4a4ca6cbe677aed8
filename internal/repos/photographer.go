package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/photocatalog-backend/internal/logger"
  "github.com/yungbote/photocatalog-backend/internal/types"
)

type PhotographerRepo interface {
  Create(ctx context.Context, tx *gorm.DB, photographers []*types.Photographer) ([]*types.Photographer, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, photographerIDs []uuid.UUID) ([]*types.Photographer, error)
  GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Photographer, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Photographer, error)
}

type photographerRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPhotographerRepo(db *gorm.DB, baseLog *logger.Logger) PhotographerRepo {
  repoLog := baseLog.With("repo", "PhotographerRepo")
  return &photographerRepo{db: db, log: repoLog}
}

func (pr *photographerRepo) Create(ctx context.Context, tx *gorm.DB, photographers []*types.Photographer) ([]*types.Photographer, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(photographers) == 0 {
    return []*types.Photographer{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&photographers).Error; err != nil {
    return nil, err
  }
  return photographers, nil
}

func (pr *photographerRepo) GetByIDs(ctx context.Context, tx *gorm.DB, photographerIDs []uuid.UUID) ([]*types.Photographer, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Photographer
  if len(photographerIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Preload("User").
    Where("id IN ?", photographerIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *photographerRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Photographer, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Photographer
  if len(userIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id IN ?", userIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *photographerRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Photographer, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Photographer
  if err := transaction.WithContext(ctx).
    Preload("User").
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
