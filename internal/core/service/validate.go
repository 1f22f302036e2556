package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

// inputs validates payload fields once the caller has been authorized, so an
// unauthorized caller never learns anything from a validation message.
var inputs = validator.New(validator.WithRequiredStructEnabled())

// minChars reports whether s holds at least n characters after trimming.
// Length is counted in runes.
func minChars(s, n string) bool {
	return inputs.Var(strings.TrimSpace(s), "min="+n) == nil
}

func validateJobText(title, description string, tags []string) error {
	if !minChars(title, "3") {
		return domain.Invalid("Title must be at least 3 characters")
	}
	if !minChars(description, "10") {
		return domain.Invalid("Description must be at least 10 characters")
	}
	if len(tags) == 0 {
		return domain.Invalid("At least one tag is required")
	}
	return nil
}

func validatePipelineInput(in ports.StartPipelineInput) error {
	if len(in.ApplicationIDs) == 0 {
		return domain.Invalid("At least one candidate must be selected")
	}
	if err := inputs.Var(in.ApplicationIDs, "dive,uuid"); err != nil {
		return domain.Invalid("candidates must be valid application ids")
	}
	if in.Config == nil {
		return nil
	}

	err := inputs.Struct(in.Config)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	switch ve[0].StructField() {
	case "AutoRejectScore":
		return domain.Invalid("auto_reject_score must be between 0 and 100")
	default:
		return domain.Invalid("stages must not contain empty names")
	}
}
