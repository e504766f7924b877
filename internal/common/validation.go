package common

import (
	"fmt"
	"slices"

	"resumescore/internal/errors"
)

// ValidateOutputFormat checks format against supported. An empty list
// accepts any format.
func ValidateOutputFormat(format string, supported []string) error {
	if len(supported) == 0 || slices.Contains(supported, format) {
		return nil
	}
	return errors.NewValidationError(errors.ErrCodeInvalidFormat,
		fmt.Sprintf("unsupported output format '%s'. Supported formats: %v", format, supported), nil).
		WithContext("format", format)
}
