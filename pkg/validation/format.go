// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/business-case/pkg/constants"
)

// OutputFormats lists the report formats in the order they are documented.
var OutputFormats = []string{constants.OutputFormatPretty, constants.OutputFormatCSV}

// ValidateOutputFormat checks that format names a report format exactly.
// Matching is case-sensitive, as for the --output-format flag.
func ValidateOutputFormat(format string) error {
	for _, known := range OutputFormats {
		if format == known {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format %q: expected one of %s",
		format, strings.Join(OutputFormats, ", "))
}
