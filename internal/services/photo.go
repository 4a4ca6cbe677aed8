package services

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "github.com/jackc/pgx/v5/pgconn"
  "gorm.io/gorm"
  "github.com/yungbote/photocatalog-backend/internal/clients/redis"
  "github.com/yungbote/photocatalog-backend/internal/logger"
  "github.com/yungbote/photocatalog-backend/internal/repos"
  "github.com/yungbote/photocatalog-backend/internal/types"
)

var errPhotographNotFound = errors.New("photograph not found")

// PhotoService executes validated photograph writes and read projections.
// Every operation returns an OperationResult; errors never escape to the
// transport layer as exceptions.
type PhotoService interface {
  Create(ctx context.Context, input *PhotographInput) OperationResult
  Update(ctx context.Context, photographID uuid.UUID, patch *PhotographPatch) OperationResult
  Get(ctx context.Context, photographID uuid.UUID) OperationResult
  List(ctx context.Context, photographerID *uuid.UUID) OperationResult
}

type photoService struct {
  db                *gorm.DB
  log               *logger.Logger
  photographRepo    repos.PhotographRepo
  photoSourceRepo   repos.PhotoSourceRepo
  photographerRepo  repos.PhotographerRepo
  cache             redis.PhotoCache
}

// NewPhotoService wires the photograph write pipeline. The cache is optional
// and may be nil.
func NewPhotoService(
  db                *gorm.DB,
  log               *logger.Logger,
  photographRepo    repos.PhotographRepo,
  photoSourceRepo   repos.PhotoSourceRepo,
  photographerRepo  repos.PhotographerRepo,
  cache             redis.PhotoCache,
) PhotoService {
  serviceLog := log.With("service", "PhotoService")
  return &photoService{
    db:               db,
    log:              serviceLog,
    photographRepo:   photographRepo,
    photoSourceRepo:  photoSourceRepo,
    photographerRepo: photographerRepo,
    cache:            cache,
  }
}

func (ps *photoService) Create(ctx context.Context, input *PhotographInput) OperationResult {
  photographers, pErr := ps.photographerRepo.GetByIDs(ctx, nil, []uuid.UUID{input.PhotographerID})
  if pErr != nil {
    ps.log.Warn("Failed to look up photographer", "error", pErr)
    return ErrorResult(pErr)
  }
  if len(photographers) == 0 {
    return InvalidResult(FieldError{Field: "photographer_id", Message: "photographer not found"})
  }

  photo := &types.Photograph{
    ID:             uuid.New(),
    Title:          input.Title,
    URL:            input.URL,
    AvgColor:       input.AvgColor,
    AltText:        input.AltText,
    PhotographerID: input.PhotographerID,
  }
  err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := ps.photographRepo.Create(ctx, tx, []*types.Photograph{photo}); cErr != nil {
      return cErr
    }
    if input.Source != nil {
      source := photoSourceFromInput(photo.ID, input.Source)
      if _, sErr := ps.photoSourceRepo.Create(ctx, tx, []*types.PhotoSource{source}); sErr != nil {
        return sErr
      }
    }
    return nil
  })
  if err != nil {
    return ps.writeFailure(err)
  }
  return ps.loadPhoto(ctx, photo.ID)
}

func (ps *photoService) Update(ctx context.Context, photographID uuid.UUID, patch *PhotographPatch) OperationResult {
  err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    photos, gErr := ps.photographRepo.GetByIDs(ctx, tx, []uuid.UUID{photographID})
    if gErr != nil {
      return gErr
    }
    if len(photos) == 0 {
      return errPhotographNotFound
    }
    photo := photos[0]

    fields := map[string]any{}
    if patch.Title != nil {
      fields["title"] = *patch.Title
    }
    if patch.URL != nil {
      fields["url"] = *patch.URL
    }
    if patch.AvgColor != nil {
      fields["avg_color"] = *patch.AvgColor
    }
    if patch.AltText != nil {
      fields["alt_text"] = *patch.AltText
    }
    if uErr := ps.photographRepo.UpdateFields(ctx, tx, photo.ID, fields); uErr != nil {
      return uErr
    }

    // Nested upsert: create the source on first sight, merge supplied
    // sub-fields when one already exists, leave it untouched when the patch
    // omits it.
    if patch.Source == nil {
      return nil
    }
    if photo.Source == nil {
      source := photoSourceFromInput(photo.ID, patch.Source)
      _, sErr := ps.photoSourceRepo.Create(ctx, tx, []*types.PhotoSource{source})
      return sErr
    }
    return ps.photoSourceRepo.UpdateFields(ctx, tx, photo.Source.ID, photoSourceUpdateFields(patch.Source))
  })
  if err != nil {
    if errors.Is(err, errPhotographNotFound) {
      return NotFoundResult("photograph not found")
    }
    return ps.writeFailure(err)
  }
  ps.invalidatePhoto(ctx, photographID)
  return ps.loadPhoto(ctx, photographID)
}

func (ps *photoService) Get(ctx context.Context, photographID uuid.UUID) OperationResult {
  if ps.cache != nil {
    if cached, ok := ps.cache.GetPhoto(ctx, photographID); ok {
      return SuccessResult(cached)
    }
  }
  return ps.loadPhoto(ctx, photographID)
}

func (ps *photoService) List(ctx context.Context, photographerID *uuid.UUID) OperationResult {
  photos, err := ps.photographRepo.List(ctx, nil, photographerID)
  if err != nil {
    ps.log.Warn("Failed to list photographs", "error", err)
    return ErrorResult(err)
  }
  return SuccessListResult(photos)
}

func (ps *photoService) loadPhoto(ctx context.Context, photographID uuid.UUID) OperationResult {
  photos, err := ps.photographRepo.GetByIDs(ctx, nil, []uuid.UUID{photographID})
  if err != nil {
    ps.log.Warn("Failed to load photograph", "error", err)
    return ErrorResult(err)
  }
  if len(photos) == 0 {
    return NotFoundResult("photograph not found")
  }
  if ps.cache != nil {
    ps.cache.SetPhoto(ctx, photos[0])
  }
  return SuccessResult(photos[0])
}

func (ps *photoService) writeFailure(err error) OperationResult {
  if isDuplicateKey(err) {
    return ConflictResult("url", "a photograph with this url already exists")
  }
  ps.log.Warn("Photograph write failed", "error", err)
  return ErrorResult(err)
}

func (ps *photoService) invalidatePhoto(ctx context.Context, photographID uuid.UUID) {
  if ps.cache != nil {
    ps.cache.InvalidatePhoto(ctx, photographID)
  }
}

func isDuplicateKey(err error) bool {
  if errors.Is(err, gorm.ErrDuplicatedKey) {
    return true
  }
  var pgErr *pgconn.PgError
  if errors.As(err, &pgErr) && pgErr.Code == "23505" {
    return true
  }
  return false
}

func photoSourceFromInput(photographID uuid.UUID, in *PhotoSourceInput) *types.PhotoSource {
  return &types.PhotoSource{
    ID:           uuid.New(),
    PhotographID: photographID,
    Original:     in.Original,
    Medium:       in.Medium,
    Small:        in.Small,
    Tiny:         in.Tiny,
    Large:        in.Large,
    Large2x:      in.Large2x,
    Portrait:     in.Portrait,
    Landscape:    in.Landscape,
  }
}

func photoSourceUpdateFields(in *PhotoSourceInput) map[string]any {
  fields := map[string]any{}
  if in.Original != nil {
    fields["original"] = *in.Original
  }
  if in.Medium != nil {
    fields["medium"] = *in.Medium
  }
  if in.Small != nil {
    fields["small"] = *in.Small
  }
  if in.Tiny != nil {
    fields["tiny"] = *in.Tiny
  }
  if in.Large != nil {
    fields["large"] = *in.Large
  }
  if in.Large2x != nil {
    fields["large_2x"] = *in.Large2x
  }
  if in.Portrait != nil {
    fields["portrait"] = *in.Portrait
  }
  if in.Landscape != nil {
    fields["landscape"] = *in.Landscape
  }
  return fields
}
