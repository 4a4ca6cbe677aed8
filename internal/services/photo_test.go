package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/photocatalog-backend/internal/repos"
	"github.com/yungbote/photocatalog-backend/internal/types"
)

type photoFixture struct {
	db           *gorm.DB
	service      PhotoService
	photographer *types.Photographer
}

func newPhotoFixture(t *testing.T) *photoFixture {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	photographRepo := repos.NewPhotographRepo(db, log)
	photoSourceRepo := repos.NewPhotoSourceRepo(db, log)
	photographerRepo := repos.NewPhotographerRepo(db, log)
	return &photoFixture{
		db:           db,
		service:      NewPhotoService(db, log, photographRepo, photoSourceRepo, photographerRepo, nil),
		photographer: seedPhotographer(t, db),
	}
}

func (fx *photoFixture) createPhoto(t *testing.T, title, url string, source *PhotoSourceInput) *types.Photograph {
	t.Helper()
	result := fx.service.Create(context.Background(), &PhotographInput{
		Title:          title,
		URL:            url,
		PhotographerID: fx.photographer.ID,
		Source:         source,
	})
	if !result.OK() {
		t.Fatalf("Create outcome=%s errors=%+v", result.Outcome, result.Errors)
	}
	return result.Photo
}

func TestPhotoCreateWithoutSource(t *testing.T) {
	fx := newPhotoFixture(t)
	photo := fx.createPhoto(t, "No source yet", "https://img.example.com/a.jpg", nil)
	if photo.Source != nil {
		t.Fatalf("expected no source, got %+v", photo.Source)
	}
	if photo.Photographer == nil || photo.Photographer.User == nil {
		t.Fatalf("expected photographer preloaded with user")
	}
}

func TestPhotoCreateWithSource(t *testing.T) {
	fx := newPhotoFixture(t)
	photo := fx.createPhoto(t, "With source", "https://img.example.com/b.jpg", &PhotoSourceInput{
		Original: strPtr("https://img.example.com/b-orig.jpg"),
	})
	if photo.Source == nil {
		t.Fatalf("expected source row")
	}
	if photo.Source.Original == nil || *photo.Source.Original != "https://img.example.com/b-orig.jpg" {
		t.Fatalf("Original=%v", photo.Source.Original)
	}
	if photo.Source.Medium != nil {
		t.Fatalf("unsupplied size must stay nil")
	}
}

func TestPhotoCreateDuplicateURL(t *testing.T) {
	fx := newPhotoFixture(t)
	fx.createPhoto(t, "First", "https://img.example.com/dup.jpg", nil)

	result := fx.service.Create(context.Background(), &PhotographInput{
		Title:          "Second",
		URL:            "https://img.example.com/dup.jpg",
		PhotographerID: fx.photographer.ID,
	})
	if result.Outcome != OutcomeConflict {
		t.Fatalf("outcome=%s, want conflict (errors=%+v)", result.Outcome, result.Errors)
	}
	if len(result.Errors) == 0 || result.Errors[0].Field != "url" {
		t.Fatalf("conflict errors=%+v", result.Errors)
	}
}

func TestPhotoCreateUnknownPhotographer(t *testing.T) {
	fx := newPhotoFixture(t)
	result := fx.service.Create(context.Background(), &PhotographInput{
		Title:          "Orphan",
		URL:            "https://img.example.com/orphan.jpg",
		PhotographerID: uuid.New(),
	})
	if result.Outcome != OutcomeInvalid {
		t.Fatalf("outcome=%s, want invalid", result.Outcome)
	}
	if len(result.Errors) == 0 || result.Errors[0].Field != "photographer_id" {
		t.Fatalf("errors=%+v", result.Errors)
	}
}

func TestPhotoUpdatePartialPreservesRest(t *testing.T) {
	fx := newPhotoFixture(t)
	photo := fx.createPhoto(t, "Keep me", "https://img.example.com/keep.jpg", nil)

	result := fx.service.Update(context.Background(), photo.ID, &PhotographPatch{
		AvgColor: strPtr("#445566"),
	})
	if !result.OK() {
		t.Fatalf("Update outcome=%s errors=%+v", result.Outcome, result.Errors)
	}
	if result.Photo.Title != "Keep me" || result.Photo.URL != "https://img.example.com/keep.jpg" {
		t.Fatalf("untouched fields changed: %+v", result.Photo)
	}
	if result.Photo.AvgColor == nil || *result.Photo.AvgColor != "#445566" {
		t.Fatalf("AvgColor=%v", result.Photo.AvgColor)
	}
}

func TestPhotoUpdateCreatesSourceOnFirstSight(t *testing.T) {
	fx := newPhotoFixture(t)
	photo := fx.createPhoto(t, "Late source", "https://img.example.com/late.jpg", nil)

	result := fx.service.Update(context.Background(), photo.ID, &PhotographPatch{
		Source: &PhotoSourceInput{Small: strPtr("https://img.example.com/late-small.jpg")},
	})
	if !result.OK() {
		t.Fatalf("Update outcome=%s errors=%+v", result.Outcome, result.Errors)
	}
	if result.Photo.Source == nil || result.Photo.Source.Small == nil {
		t.Fatalf("source not created: %+v", result.Photo.Source)
	}
}

func TestPhotoUpdateMergesSourceFields(t *testing.T) {
	fx := newPhotoFixture(t)
	photo := fx.createPhoto(t, "Merge", "https://img.example.com/merge.jpg", &PhotoSourceInput{
		Original: strPtr("https://img.example.com/merge-orig.jpg"),
		Tiny:     strPtr("https://img.example.com/merge-tiny.jpg"),
	})

	result := fx.service.Update(context.Background(), photo.ID, &PhotographPatch{
		Source: &PhotoSourceInput{Tiny: strPtr("https://img.example.com/merge-tiny-v2.jpg")},
	})
	if !result.OK() {
		t.Fatalf("Update outcome=%s errors=%+v", result.Outcome, result.Errors)
	}
	source := result.Photo.Source
	if source == nil {
		t.Fatalf("source missing after merge")
	}
	if source.Tiny == nil || *source.Tiny != "https://img.example.com/merge-tiny-v2.jpg" {
		t.Fatalf("Tiny=%v", source.Tiny)
	}
	if source.Original == nil || *source.Original != "https://img.example.com/merge-orig.jpg" {
		t.Fatalf("Original must survive the merge, got %v", source.Original)
	}

	var count int64
	if err := fx.db.Model(&types.PhotoSource{}).Where("photograph_id = ?", photo.ID).Count(&count).Error; err != nil {
		t.Fatalf("count sources: %v", err)
	}
	if count != 1 {
		t.Fatalf("source rows=%d, want 1", count)
	}
}

func TestPhotoUpdateOmittedSourceUntouched(t *testing.T) {
	fx := newPhotoFixture(t)
	photo := fx.createPhoto(t, "Untouched", "https://img.example.com/untouched.jpg", &PhotoSourceInput{
		Large: strPtr("https://img.example.com/untouched-large.jpg"),
	})

	result := fx.service.Update(context.Background(), photo.ID, &PhotographPatch{Title: strPtr("Renamed")})
	if !result.OK() {
		t.Fatalf("Update outcome=%s errors=%+v", result.Outcome, result.Errors)
	}
	if result.Photo.Source == nil || result.Photo.Source.Large == nil {
		t.Fatalf("source must be untouched when the patch omits it")
	}
}

func TestPhotoUpdateNotFound(t *testing.T) {
	fx := newPhotoFixture(t)
	result := fx.service.Update(context.Background(), uuid.New(), &PhotographPatch{Title: strPtr("x")})
	if result.Outcome != OutcomeNotFound {
		t.Fatalf("outcome=%s, want not_found", result.Outcome)
	}
}

func TestPhotoUpdateDuplicateURL(t *testing.T) {
	fx := newPhotoFixture(t)
	fx.createPhoto(t, "First", "https://img.example.com/u1.jpg", nil)
	second := fx.createPhoto(t, "Second", "https://img.example.com/u2.jpg", nil)

	result := fx.service.Update(context.Background(), second.ID, &PhotographPatch{
		URL: strPtr("https://img.example.com/u1.jpg"),
	})
	if result.Outcome != OutcomeConflict {
		t.Fatalf("outcome=%s, want conflict (errors=%+v)", result.Outcome, result.Errors)
	}
}

func TestPhotoGetAndList(t *testing.T) {
	fx := newPhotoFixture(t)
	photo := fx.createPhoto(t, "Listed", "https://img.example.com/listed.jpg", nil)

	got := fx.service.Get(context.Background(), photo.ID)
	if !got.OK() || got.Photo.ID != photo.ID {
		t.Fatalf("Get outcome=%s", got.Outcome)
	}

	missing := fx.service.Get(context.Background(), uuid.New())
	if missing.Outcome != OutcomeNotFound {
		t.Fatalf("Get outcome=%s, want not_found", missing.Outcome)
	}

	all := fx.service.List(context.Background(), nil)
	if !all.OK() || len(all.Photos) != 1 {
		t.Fatalf("List returned %d photos", len(all.Photos))
	}

	other := seedPhotographer(t, fx.db)
	filtered := fx.service.List(context.Background(), &other.ID)
	if !filtered.OK() || len(filtered.Photos) != 0 {
		t.Fatalf("filtered List returned %d photos, want 0", len(filtered.Photos))
	}
}

// failingPhotoSourceRepo forces the nested write to fail after the photograph
// insert succeeded, so the transaction must roll everything back.
type failingPhotoSourceRepo struct{}

func (f *failingPhotoSourceRepo) Create(ctx context.Context, tx *gorm.DB, sources []*types.PhotoSource) ([]*types.PhotoSource, error) {
	return nil, fmt.Errorf("source write refused")
}

func (f *failingPhotoSourceRepo) GetByPhotographIDs(ctx context.Context, tx *gorm.DB, photographIDs []uuid.UUID) ([]*types.PhotoSource, error) {
	return nil, nil
}

func (f *failingPhotoSourceRepo) UpdateFields(ctx context.Context, tx *gorm.DB, sourceID uuid.UUID, fields map[string]any) error {
	return errors.New("source write refused")
}

func TestPhotoCreateRollsBackOnSourceFailure(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	photographRepo := repos.NewPhotographRepo(db, log)
	photographerRepo := repos.NewPhotographerRepo(db, log)
	service := NewPhotoService(db, log, photographRepo, &failingPhotoSourceRepo{}, photographerRepo, nil)
	photographer := seedPhotographer(t, db)

	result := service.Create(context.Background(), &PhotographInput{
		Title:          "Half written",
		URL:            "https://img.example.com/half.jpg",
		PhotographerID: photographer.ID,
		Source:         &PhotoSourceInput{Original: strPtr("https://img.example.com/half-orig.jpg")},
	})
	if result.Outcome != OutcomeError {
		t.Fatalf("outcome=%s, want error", result.Outcome)
	}

	var count int64
	if err := db.Model(&types.Photograph{}).Count(&count).Error; err != nil {
		t.Fatalf("count photographs: %v", err)
	}
	if count != 0 {
		t.Fatalf("photograph rows=%d, want 0 after rollback", count)
	}
}
