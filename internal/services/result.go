package services

import (
  "github.com/yungbote/photocatalog-backend/internal/types"
)

// Outcome tags every OperationResult at construction so callers branch on one
// shape instead of inspecting errors.
type Outcome string

const (
  OutcomeSuccess   Outcome = "success"
  OutcomeInvalid   Outcome = "invalid"
  OutcomeNotFound  Outcome = "not_found"
  OutcomeConflict  Outcome = "conflict"
  OutcomeError     Outcome = "error"
)

type FieldError struct {
  Field       string      `json:"field"`
  Message     string      `json:"message"`
}

type OperationResult struct {
  Outcome     Outcome
  Photo       *types.Photograph
  Photos      []*types.Photograph
  Errors      []FieldError
}

func (r OperationResult) OK() bool {
  return r.Outcome == OutcomeSuccess
}

func SuccessResult(photo *types.Photograph) OperationResult {
  return OperationResult{Outcome: OutcomeSuccess, Photo: photo}
}

func SuccessListResult(photos []*types.Photograph) OperationResult {
  return OperationResult{Outcome: OutcomeSuccess, Photos: photos}
}

func InvalidResult(errs ...FieldError) OperationResult {
  return OperationResult{Outcome: OutcomeInvalid, Errors: errs}
}

func NotFoundResult(message string) OperationResult {
  return OperationResult{Outcome: OutcomeNotFound, Errors: []FieldError{{Field: "id", Message: message}}}
}

func ConflictResult(field, message string) OperationResult {
  return OperationResult{Outcome: OutcomeConflict, Errors: []FieldError{{Field: field, Message: message}}}
}

func ErrorResult(err error) OperationResult {
  msg := "internal error"
  if err != nil {
    msg = err.Error()
  }
  return OperationResult{Outcome: OutcomeError, Errors: []FieldError{{Message: msg}}}
}
