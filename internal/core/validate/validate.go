// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
)

// SearchPath validates that a search path has at least one non-empty
// component.
func SearchPath(search string) error {
	if strings.Trim(strings.TrimSpace(search), "/") == "" {
		return fmt.Errorf("search path is required")
	}
	return nil
}

// Endpoint validates an archive endpoint path. Empty endpoints are allowed.
func Endpoint(endpoint string) error {
	if endpoint != "" && !strings.HasPrefix(endpoint, "/") {
		return fmt.Errorf("endpoint %q must start with /", endpoint)
	}
	return nil
}
