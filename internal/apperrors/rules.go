package apperrors

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// RuleMessage turns a failed validator rule into the message reported for its field.
// HTTP binding and service-level validation share it, so both surfaces word errors alike.
func RuleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	case "numeric":
		return "must contain only digits"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "failed the " + fe.Tag() + " rule"
	}
}
