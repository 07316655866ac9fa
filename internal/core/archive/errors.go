package archive

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrStatus matches any *StatusError with errors.Is.
var ErrStatus = errors.New("unexpected status")

// StatusError is returned when the archive answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is reports whether target is ErrStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}
