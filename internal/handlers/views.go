package handlers

import (
  "time"
  "github.com/google/uuid"
  "github.com/yungbote/photocatalog-backend/internal/types"
)

// View types are assembled here by composition: the detail view embeds the
// slim view and adds the photographer projection.

type PhotoSourceView struct {
  Original      *string       `json:"original"`
  Medium        *string       `json:"medium"`
  Small         *string       `json:"small"`
  Tiny          *string       `json:"tiny"`
  Large         *string       `json:"large"`
  Large2x       *string       `json:"large_2x"`
  Portrait      *string       `json:"portrait"`
  Landscape     *string       `json:"landscape"`
}

type PhotoView struct {
  ID                uuid.UUID         `json:"id"`
  Title             string            `json:"title"`
  URL               string            `json:"url"`
  AvgColor          *string           `json:"avg_color"`
  AltText           *string           `json:"alt_text"`
  PhotographerID    uuid.UUID         `json:"photographer_id"`
  Source            *PhotoSourceView  `json:"source"`
  DateCreated       time.Time         `json:"date_created"`
  LastUpdated       time.Time         `json:"last_updated"`
}

type UserPublicView struct {
  ID            uuid.UUID     `json:"id"`
  Username      string        `json:"username"`
  FirstName     string        `json:"first_name"`
  LastName      string        `json:"last_name"`
}

type PhotographerView struct {
  ID            uuid.UUID         `json:"id"`
  User          *UserPublicView   `json:"user"`
  DateCreated   time.Time         `json:"date_created"`
  LastUpdated   time.Time         `json:"last_updated"`
}

type PhotoDetailView struct {
  PhotoView
  Photographer  *PhotographerView   `json:"photographer"`
}

func NewPhotoSourceView(source *types.PhotoSource) *PhotoSourceView {
  if source == nil {
    return nil
  }
  return &PhotoSourceView{
    Original:  source.Original,
    Medium:    source.Medium,
    Small:     source.Small,
    Tiny:      source.Tiny,
    Large:     source.Large,
    Large2x:   source.Large2x,
    Portrait:  source.Portrait,
    Landscape: source.Landscape,
  }
}

func NewPhotoView(photo *types.Photograph) PhotoView {
  return PhotoView{
    ID:             photo.ID,
    Title:          photo.Title,
    URL:            photo.URL,
    AvgColor:       photo.AvgColor,
    AltText:        photo.AltText,
    PhotographerID: photo.PhotographerID,
    Source:         NewPhotoSourceView(photo.Source),
    DateCreated:    photo.CreatedAt,
    LastUpdated:    photo.UpdatedAt,
  }
}

func NewPhotoViews(photos []*types.Photograph) []PhotoView {
  views := make([]PhotoView, 0, len(photos))
  for _, photo := range photos {
    views = append(views, NewPhotoView(photo))
  }
  return views
}

func NewUserPublicView(user *types.User) *UserPublicView {
  if user == nil {
    return nil
  }
  return &UserPublicView{
    ID:        user.ID,
    Username:  user.Username,
    FirstName: user.FirstName,
    LastName:  user.LastName,
  }
}

func NewPhotographerView(photographer *types.Photographer) *PhotographerView {
  if photographer == nil {
    return nil
  }
  return &PhotographerView{
    ID:          photographer.ID,
    User:        NewUserPublicView(photographer.User),
    DateCreated: photographer.CreatedAt,
    LastUpdated: photographer.UpdatedAt,
  }
}

func NewPhotographerViews(photographers []*types.Photographer) []PhotographerView {
  views := make([]PhotographerView, 0, len(photographers))
  for _, photographer := range photographers {
    if v := NewPhotographerView(photographer); v != nil {
      views = append(views, *v)
    }
  }
  return views
}

func NewPhotoDetailView(photo *types.Photograph) PhotoDetailView {
  return PhotoDetailView{
    PhotoView:    NewPhotoView(photo),
    Photographer: NewPhotographerView(photo.Photographer),
  }
}
