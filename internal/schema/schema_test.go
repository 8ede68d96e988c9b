package schema

import (
	"testing"

	"github.com/TechXplorers1/comagend-website/internal/validation"
)

func TestProgramInputValid(t *testing.T) {
	v := validation.New()
	input := ProgramInput{
		Title:       "Clean Water",
		Category:    "Health",
		Image:       "https://x/y.png",
		Description: "desc",
	}
	if errs := Validate(v, input); errs != nil {
		t.Fatalf("expected valid input, got field errors: %v", errs)
	}
}

func TestProgramInputMissingTitle(t *testing.T) {
	v := validation.New()
	input := ProgramInput{
		Category:    "Health",
		Image:       "https://x/y.png",
		Description: "desc",
	}
	errs := Validate(v, input)
	if errs == nil {
		t.Fatalf("expected field errors")
	}
	if _, ok := errs["Title"]; !ok {
		t.Fatalf("expected error scoped to Title, got: %v", errs)
	}
	if _, ok := errs["Category"]; ok {
		t.Fatalf("Category should not carry an error: %v", errs)
	}
}

func TestProgramInputBlankTitle(t *testing.T) {
	v := validation.New()
	input := ProgramInput{
		Title:       "   ",
		Category:    "Health",
		Image:       "https://x/y.png",
		Description: "desc",
	}
	errs := Validate(v, input)
	if _, ok := errs["Title"]; !ok {
		t.Fatalf("whitespace-only title should fail notblank, got: %v", errs)
	}
}

func TestProgramPatchPartial(t *testing.T) {
	v := validation.New()
	title := "Updated"
	patch := ProgramPatch{Title: &title}
	if errs := Validate(v, patch); errs != nil {
		t.Fatalf("patch with only title should be valid, got: %v", errs)
	}
}

func TestProgramPatchBadImage(t *testing.T) {
	v := validation.New()
	img := "not-a-url"
	patch := ProgramPatch{Image: &img}
	errs := Validate(v, patch)
	if _, ok := errs["Image"]; !ok {
		t.Fatalf("expected error scoped to Image, got: %v", errs)
	}
}

func TestDonationInputProgramEnum(t *testing.T) {
	v := validation.New()
	input := DonationInput{
		Program:    "lobbying",
		Amount:     25,
		DonorName:  "A Donor",
		DonorEmail: "donor@example.org",
	}
	errs := Validate(v, input)
	if _, ok := errs["Program"]; !ok {
		t.Fatalf("unknown program designation should fail, got: %v", errs)
	}

	input.Program = DonationProgramEducation
	if errs := Validate(v, input); errs != nil {
		t.Fatalf("expected valid donation, got: %v", errs)
	}
}

func TestContactInputEmail(t *testing.T) {
	v := validation.New()
	input := ContactInput{
		Name:    "Jane",
		Email:   "not-an-email",
		Subject: "Hello",
		Message: "Hi there",
	}
	errs := Validate(v, input)
	if _, ok := errs["Email"]; !ok {
		t.Fatalf("expected error scoped to Email, got: %v", errs)
	}
}
