package playground

import (
	"fmt"
	"regexp"

	"cipherstudio/internal/config"
	"cipherstudio/internal/domain"
	models "cipherstudio/internal/domain/models/playground"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	noSlash = regexp.MustCompile(`^[^/]+$`)

	// userRefPattern accepts identity strings issued by the auth provider
	userRefPattern = regexp.MustCompile(`^[A-Za-z0-9_.:@|-]+$`)
)

// field pairs a value with the rules it must satisfy
type field struct {
	value interface{}
	rules []validation.Rule
}

// validateFields checks fields in order and reports the first failure as a
// domain validation error with the rule's own message.
func validateFields(fields ...field) error {
	for _, f := range fields {
		if err := validation.Validate(f.value, f.rules...); err != nil {
			return domain.NewValidation("%s", err.Error())
		}
	}
	return nil
}

func nodeNameRules(requiredMsg string) []validation.Rule {
	return []validation.Rule{
		validation.Required.Error(requiredMsg),
		validation.RuneLength(1, config.MaxFileNameLength).
			Error(fmt.Sprintf("name must be at most %d characters", config.MaxFileNameLength)),
		validation.Match(noSlash).Error("name cannot contain slashes"),
		validation.NotIn(".", "..").Error("name is reserved"),
	}
}

func nodeTypeRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("type must be 'file' or 'folder'"),
		validation.In(models.NodeTypeFile, models.NodeTypeFolder).Error("type must be 'file' or 'folder'"),
	}
}

func projectNameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Name is required"),
		validation.RuneLength(1, config.MaxProjectNameLength).
			Error(fmt.Sprintf("Name must be at most %d characters", config.MaxProjectNameLength)),
	}
}

func descriptionRules() []validation.Rule {
	return []validation.Rule{
		validation.RuneLength(0, config.MaxDescriptionLength).
			Error(fmt.Sprintf("description must be at most %d characters", config.MaxDescriptionLength)),
	}
}

// isValidUserRef reports whether ref looks like an identity issued by the auth provider
func isValidUserRef(ref string) bool {
	err := validation.Validate(ref,
		validation.Required,
		validation.RuneLength(1, config.MaxUserRefLength),
		validation.Match(userRefPattern),
	)
	return err == nil
}

func nodeProjectRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("projectId is required"),
	}
}
