package model

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateShelfRequest names a new, non-permanent shelf.
type CreateShelfRequest struct {
	Name string `json:"name" binding:"required"`
}

func (r CreateShelfRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("shelf name is required"),
			validation.Length(1, 100).Error("shelf name must be 1-100 characters"),
			validation.By(func(interface{}) error {
				if strings.TrimSpace(r.Name) == "" {
					return errors.New("shelf name must not be blank")
				}
				return nil
			}),
		),
	)
}

// RenameShelfRequest carries a shelf's replacement name.
type RenameShelfRequest struct {
	Name string `json:"name" binding:"required"`
}

func (r RenameShelfRequest) Validate() error {
	return CreateShelfRequest(r).Validate()
}
