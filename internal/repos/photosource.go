package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/photocatalog-backend/internal/logger"
  "github.com/yungbote/photocatalog-backend/internal/types"
)

type PhotoSourceRepo interface {
  Create(ctx context.Context, tx *gorm.DB, sources []*types.PhotoSource) ([]*types.PhotoSource, error)
  GetByPhotographIDs(ctx context.Context, tx *gorm.DB, photographIDs []uuid.UUID) ([]*types.PhotoSource, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, sourceID uuid.UUID, fields map[string]any) error
}

type photoSourceRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPhotoSourceRepo(db *gorm.DB, baseLog *logger.Logger) PhotoSourceRepo {
  repoLog := baseLog.With("repo", "PhotoSourceRepo")
  return &photoSourceRepo{db: db, log: repoLog}
}

func (psr *photoSourceRepo) Create(ctx context.Context, tx *gorm.DB, sources []*types.PhotoSource) ([]*types.PhotoSource, error) {
  transaction := tx
  if transaction == nil {
    transaction = psr.db
  }

  if len(sources) == 0 {
    return []*types.PhotoSource{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&sources).Error; err != nil {
    return nil, err
  }
  return sources, nil
}

func (psr *photoSourceRepo) GetByPhotographIDs(ctx context.Context, tx *gorm.DB, photographIDs []uuid.UUID) ([]*types.PhotoSource, error) {
  transaction := tx
  if transaction == nil {
    transaction = psr.db
  }

  var results []*types.PhotoSource
  if len(photographIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("photograph_id IN ?", photographIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (psr *photoSourceRepo) UpdateFields(ctx context.Context, tx *gorm.DB, sourceID uuid.UUID, fields map[string]any) error {
  transaction := tx
  if transaction == nil {
    transaction = psr.db
  }

  if len(fields) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Model(&types.PhotoSource{}).
    Where("id = ?", sourceID).
    Updates(fields).Error
}
