// Package analytics computes segment statistics and clustering runs over a
// normalized client table. Every function is pure: it reads the table and
// returns a fresh result.
package analytics

import (
	"errors"
	"fmt"
)

// UsageError reports a parameter rejected before any computation ran.
type UsageError struct {
	Param  string
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("analytics: invalid %s: %s", e.Param, e.Reason)
}

// IsUsage reports whether err is, or wraps, a UsageError.
func IsUsage(err error) bool {
	var u *UsageError
	return errors.As(err, &u)
}

func usagef(param, format string, args ...any) error {
	return &UsageError{Param: param, Reason: fmt.Sprintf(format, args...)}
}
