package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// ValidationError reports a rejected field at the user-input boundary. It
// matches types.ErrValidation and the field-specific sentinel via errors.Is.
type ValidationError struct {
	Field   string
	Message string
	err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the field-specific sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.err
}

// Is reports whether target is types.ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == types.ErrValidation
}

// promptDraft is the validated view of an incoming prompt. Legacy holds
// categories outside the registry that the stored record already carries;
// they keep the value rules but skip the category check.
type promptDraft struct {
	Title      string              `validate:"required"`
	PromptType string              `validate:"oneof=structured standard"`
	Tags       map[string][]string `validate:"dive,keys,tag_category,endkeys,dive,required"`
	Legacy     map[string][]string `validate:"dive,dive,required"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("tag_category", validateTagCategory); err != nil {
		panic(fmt.Sprintf("failed to register tag_category validator: %v", err))
	}
	return v
}

// validateTagCategory accepts registry category names only.
func validateTagCategory(fl validator.FieldLevel) bool {
	return types.IsCategory(fl.Field().String())
}

// draftFrom builds the draft for p. Tag values are trimmed but empty ones
// are kept so they can be rejected. stored is the tag set already saved for
// p, nil for a new prompt.
func draftFrom(p *types.Prompt, tags, stored types.Tags) promptDraft {
	d := promptDraft{
		Title:      p.Title,
		PromptType: string(p.PromptType),
		Tags:       make(map[string][]string, len(tags)),
		Legacy:     map[string][]string{},
	}
	for category, values := range tags {
		trimmed := make([]string, len(values))
		for i, v := range values {
			trimmed[i] = strings.TrimSpace(v)
		}
		if _, kept := stored[category]; kept && !types.IsCategory(category) {
			d.Legacy[category] = trimmed
			continue
		}
		d.Tags[category] = trimmed
	}
	return d
}

// toValidationError converts the first validator failure into a
// ValidationError.
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch {
	case fe.Tag() == "tag_category":
		return &ValidationError{
			Field:   "tags",
			Message: fmt.Sprintf("unknown tag category %q", fe.Value()),
			err:     types.ErrUnknownCategory,
		}
	case strings.HasPrefix(fe.Field(), "Tags"), strings.HasPrefix(fe.Field(), "Legacy"):
		return &ValidationError{
			Field:   "tags",
			Message: "tag values must not be empty",
			err:     types.ErrInvalidTagValue,
		}
	case fe.Field() == "Title":
		return &ValidationError{
			Field:   "title",
			Message: "title must not be empty",
			err:     types.ErrInvalidTitle,
		}
	case fe.Field() == "PromptType":
		return &ValidationError{
			Field:   "prompt_type",
			Message: fmt.Sprintf("invalid prompt type %q (valid: structured, standard)", fe.Value()),
			err:     types.ErrInvalidPromptType,
		}
	}
	return &ValidationError{Field: strings.ToLower(fe.Field()), Message: fe.Error(), err: types.ErrValidation}
}
