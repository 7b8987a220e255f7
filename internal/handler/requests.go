package handler

import "github.com/stellarhost/portal/internal/validation"

// EmptyRequest is the payload for endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// IDParam binds the numeric :id path parameter.
type IDParam struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (r *IDParam) Validate() error {
	return validation.Struct(r)
}
