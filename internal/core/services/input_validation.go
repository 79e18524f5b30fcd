package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

// newInputValidator returns a validator that reads the same `binding` tags gin uses,
// so inputs arriving from the CLI are held to the HTTP rules.
func newInputValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// collectStructErrors validates input and appends each failed rule to verr.
func collectStructErrors(v *validator.Validate, input any, verr *apperrors.ValidationError) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}
	for _, fe := range fieldErrs {
		verr.Add(fieldPath(fe.Namespace()), apperrors.RuleMessage(fe))
	}
	return nil
}

// fieldPath drops struct type names from a validator namespace,
// e.g. "InvoiceInput.items[0].description" becomes "items[0].description".
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	kept := parts[:0]
	for _, p := range parts {
		if p == "" {
			continue
		}
		if unicode.IsUpper([]rune(p)[0]) {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return namespace
	}
	return strings.Join(kept, ".")
}
