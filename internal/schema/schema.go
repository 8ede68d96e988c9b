// Package schema defines the writable subset of each entity's fields.
// The same input types are decoded by the API handlers and bound to the
// admin forms, so both sides agree on what may be written and how it is
// validated.
package schema

import (
	"github.com/TechXplorers1/comagend-website/internal/httpx"
	"github.com/TechXplorers1/comagend-website/internal/validation"
)

// Donation program designations offered on the donate form.
const (
	DonationProgramGeneral    = "general"
	DonationProgramEducation  = "education"
	DonationProgramHealthcare = "healthcare"
	DonationProgramEmergency  = "emergency"
)

type ProgramInput struct {
	Title       string `json:"title" validate:"required,notblank"`
	Category    string `json:"category" validate:"required,notblank"`
	Image       string `json:"image" validate:"required,url"`
	Description string `json:"description" validate:"required,notblank"`
}

// ProgramPatch carries a partial update; nil fields are left untouched.
type ProgramPatch struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,notblank"`
	Category    *string `json:"category,omitempty" validate:"omitempty,notblank"`
	Image       *string `json:"image,omitempty" validate:"omitempty,url"`
	Description *string `json:"description,omitempty" validate:"omitempty,notblank"`
}

type ContactInput struct {
	Name    string `json:"name" validate:"required,notblank"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,notblank"`
	Message string `json:"message" validate:"required,notblank"`
}

type DonationInput struct {
	Program    string  `json:"program" validate:"required,oneof=general education healthcare emergency"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	DonorName  string  `json:"donorName" validate:"required,notblank"`
	DonorEmail string  `json:"donorEmail" validate:"required,email"`
}

// Validate runs the struct rules and flattens failures into a map keyed
// by field name, so forms can highlight the offending field. A nil map
// means the input is valid.
func Validate(v *validation.Validator, input interface{}) map[string]string {
	err := v.Struct(input)
	if err == nil {
		return nil
	}
	details := httpx.ValidationDetails(v.ValidationErrors(err))
	if details == nil {
		return map[string]string{"_": err.Error()}
	}
	return details
}
