package services

import (
  "encoding/json"
  "fmt"
  "net/url"
  "sort"
  "github.com/google/uuid"
)

const (
  maxTextLength = 255
  maxURLLength  = 2048
)

// PhotoSourceInput carries the optional per-size URLs supplied by the caller.
// A nil field means the caller did not send that size.
type PhotoSourceInput struct {
  Original    *string
  Medium      *string
  Small       *string
  Tiny        *string
  Large       *string
  Large2x     *string
  Portrait    *string
  Landscape   *string
}

// PhotographInput is a fully validated create payload. It only exists when
// every constraint passed.
type PhotographInput struct {
  Title           string
  URL             string
  AvgColor        *string
  AltText         *string
  PhotographerID  uuid.UUID
  Source          *PhotoSourceInput
}

// PhotographPatch is a fully validated partial-update payload. Nil fields
// were not supplied.
type PhotographPatch struct {
  Title       *string
  URL         *string
  AvgColor    *string
  AltText     *string
  Source      *PhotoSourceInput
}

var photographCreateFields = []string{"title", "url", "avg_color", "alt_text", "photographer_id", "source"}
var photographUpdateFields = []string{"title", "url", "avg_color", "alt_text", "source"}
var photoSourceFields = []string{"original", "medium", "small", "tiny", "large", "large_2x", "portrait", "landscape"}

// ValidatePhotographCreate parses an untyped request body into a
// PhotographInput. Unknown keys are errors, and every violated constraint is
// reported, not just the first.
func ValidatePhotographCreate(raw []byte) (*PhotographInput, []FieldError) {
  fields, errs := decodeStrictObject(raw, photographCreateFields, "")
  if fields == nil {
    return nil, errs
  }

  input := &PhotographInput{}

  if !fieldPresent(fields, "title") {
    errs = append(errs, FieldError{Field: "title", Message: "field is required"})
  } else if v := stringField(fields, "title", "", maxTextLength, &errs); v != nil {
    input.Title = *v
  }

  if !fieldPresent(fields, "url") {
    errs = append(errs, FieldError{Field: "url", Message: "field is required"})
  } else if v := stringField(fields, "url", "", maxURLLength, &errs); v != nil {
    if !validPhotoURL(*v) {
      errs = append(errs, FieldError{Field: "url", Message: "must be a valid http(s) URL"})
    } else {
      input.URL = *v
    }
  }

  input.AvgColor = stringField(fields, "avg_color", "", maxTextLength, &errs)
  input.AltText = stringField(fields, "alt_text", "", maxTextLength, &errs)

  if !fieldPresent(fields, "photographer_id") {
    errs = append(errs, FieldError{Field: "photographer_id", Message: "field is required"})
  } else if v := stringField(fields, "photographer_id", "", 0, &errs); v != nil {
    id, pErr := uuid.Parse(*v)
    if pErr != nil {
      errs = append(errs, FieldError{Field: "photographer_id", Message: "must be a valid uuid"})
    } else {
      input.PhotographerID = id
    }
  }

  if !fieldPresent(fields, "source") {
    errs = append(errs, FieldError{Field: "source", Message: "field is required"})
  } else {
    src, srcErrs := parsePhotoSource(fields["source"], "source")
    errs = append(errs, srcErrs...)
    input.Source = src
  }

  if len(errs) > 0 {
    return nil, errs
  }
  return input, nil
}

// ValidatePhotographUpdate parses a partial-update body. Every field is
// optional, but supplied fields obey the same constraints as on create, and
// photographer_id is not patchable.
func ValidatePhotographUpdate(raw []byte) (*PhotographPatch, []FieldError) {
  fields, errs := decodeStrictObject(raw, photographUpdateFields, "")
  if fields == nil {
    return nil, errs
  }

  patch := &PhotographPatch{}
  patch.Title = stringField(fields, "title", "", maxTextLength, &errs)
  if v := stringField(fields, "url", "", maxURLLength, &errs); v != nil {
    if !validPhotoURL(*v) {
      errs = append(errs, FieldError{Field: "url", Message: "must be a valid http(s) URL"})
    } else {
      patch.URL = v
    }
  }
  patch.AvgColor = stringField(fields, "avg_color", "", maxTextLength, &errs)
  patch.AltText = stringField(fields, "alt_text", "", maxTextLength, &errs)

  if fieldPresent(fields, "source") {
    src, srcErrs := parsePhotoSource(fields["source"], "source")
    errs = append(errs, srcErrs...)
    patch.Source = src
  }

  if len(errs) > 0 {
    return nil, errs
  }
  return patch, nil
}

func parsePhotoSource(raw json.RawMessage, path string) (*PhotoSourceInput, []FieldError) {
  fields, errs := decodeStrictObject(raw, photoSourceFields, path)
  if fields == nil {
    return nil, errs
  }

  out := &PhotoSourceInput{}
  for _, name := range photoSourceFields {
    v := stringField(fields, name, path, maxURLLength, &errs)
    if v == nil {
      continue
    }
    if !validPhotoURL(*v) {
      errs = append(errs, FieldError{Field: joinFieldPath(path, name), Message: "must be a valid http(s) URL"})
      continue
    }
    switch name {
    case "original":
      out.Original = v
    case "medium":
      out.Medium = v
    case "small":
      out.Small = v
    case "tiny":
      out.Tiny = v
    case "large":
      out.Large = v
    case "large_2x":
      out.Large2x = v
    case "portrait":
      out.Portrait = v
    case "landscape":
      out.Landscape = v
    }
  }
  return out, errs
}

// decodeStrictObject unmarshals raw into a key set and enumerates every key
// that is not in the declared schema. Returns a nil map when raw is not an
// object at all.
func decodeStrictObject(raw []byte, allowed []string, path string) (map[string]json.RawMessage, []FieldError) {
  label := path
  if label == "" {
    label = "body"
  }

  var fields map[string]json.RawMessage
  if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
    return nil, []FieldError{{Field: label, Message: "must be a JSON object"}}
  }

  allowedSet := map[string]struct{}{}
  for _, name := range allowed {
    allowedSet[name] = struct{}{}
  }

  unknown := []string{}
  for key := range fields {
    if _, ok := allowedSet[key]; !ok {
      unknown = append(unknown, key)
    }
  }
  sort.Strings(unknown)

  var errs []FieldError
  for _, key := range unknown {
    errs = append(errs, FieldError{Field: joinFieldPath(path, key), Message: "unknown field"})
  }
  return fields, errs
}

// stringField decodes an optional string field, appending a typed error when
// the value is present but not a string or too long. Explicit null counts as
// absent.
func stringField(fields map[string]json.RawMessage, name, path string, maxLen int, errs *[]FieldError) *string {
  raw, ok := fields[name]
  if !ok || isJSONNull(raw) {
    return nil
  }
  var s string
  if err := json.Unmarshal(raw, &s); err != nil {
    *errs = append(*errs, FieldError{Field: joinFieldPath(path, name), Message: "must be a string"})
    return nil
  }
  if maxLen > 0 && len(s) > maxLen {
    *errs = append(*errs, FieldError{Field: joinFieldPath(path, name), Message: fmt.Sprintf("must be at most %d characters", maxLen)})
    return nil
  }
  return &s
}

func fieldPresent(fields map[string]json.RawMessage, name string) bool {
  raw, ok := fields[name]
  return ok && !isJSONNull(raw)
}

func isJSONNull(raw json.RawMessage) bool {
  return string(raw) == "null"
}

func joinFieldPath(path, name string) string {
  if path == "" {
    return name
  }
  return path + "." + name
}

func validPhotoURL(value string) bool {
  u, err := url.ParseRequestURI(value)
  if err != nil {
    return false
  }
  if u.Scheme != "http" && u.Scheme != "https" {
    return false
  }
  return u.Host != ""
}
