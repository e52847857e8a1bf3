package validator

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BusinessValidator handles business rule validation on top of struct tags.
type BusinessValidator struct {
	validate *validator.Validate
}

func NewBusinessValidator() *BusinessValidator {
	return &BusinessValidator{validate: validator.New()}
}

// Validate validates struct tags for any request type.
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	if err := bv.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateRegister validates registration business rules. The full name is
// trimmed in place first so a whitespace-only name fails the required check.
func (bv *BusinessValidator) ValidateRegister(req *RegisterRequest) ValidationErrors {
	req.FullName = strings.TrimSpace(req.FullName)
	return bv.Validate(req)
}

// ValidateNoteUpload validates the metadata fields of a file upload.
func (bv *BusinessValidator) ValidateNoteUpload(req *NoteUploadRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateLinkUpload validates link notes, including that the URL parses
// as an absolute URL.
func (bv *BusinessValidator) ValidateLinkUpload(req *LinkUploadRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if req.LinkURL != "" {
		if u, err := url.Parse(req.LinkURL); err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "linkurl",
				Message: "must be a well-formed absolute URL",
				Value:   req.LinkURL,
				Rule:    "url",
			})
		}
	}

	return errors
}

// ValidateNoteUpdate validates a partial note update.
func (bv *BusinessValidator) ValidateNoteUpdate(req *NoteUpdateRequest) ValidationErrors {
	return bv.Validate(req)
}
