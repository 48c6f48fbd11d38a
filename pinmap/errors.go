package pinmap

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// A ConfigurationError reports a project that cannot be rendered: duplicate
// names, roles the target cannot serve, or a bus missing a mandatory line.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	switch len(e.Problems) {
	case 0:
		return "invalid pin configuration"
	case 1:
		return "invalid pin configuration: " + e.Problems[0]
	default:
		return fmt.Sprintf("invalid pin configuration (%d problems): %s",
			len(e.Problems), strings.Join(e.Problems, "; "))
	}
}

// NewConfigurationError builds a ConfigurationError with a single problem.
func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Problems: []string{fmt.Sprintf(format, args...)}}
}

// ConfigurationErrorFrom folds a combined error into one ConfigurationError,
// or returns nil when err is nil.
func ConfigurationErrorFrom(err error) error {
	if err == nil {
		return nil
	}
	out := &ConfigurationError{}
	for _, e := range multierr.Errors(err) {
		if ce, ok := e.(*ConfigurationError); ok {
			out.Problems = append(out.Problems, ce.Problems...)
			continue
		}
		out.Problems = append(out.Problems, e.Error())
	}
	return out
}

// UnsupportedPlatformError is returned when no rendering profile is registered
// for the requested platform selector.
type UnsupportedPlatformError struct {
	Platform  string
	Supported []string
}

func (e *UnsupportedPlatformError) Error() string {
	if len(e.Supported) == 0 {
		return fmt.Sprintf("unsupported platform %q", e.Platform)
	}
	return fmt.Sprintf("unsupported platform %q (supported: %s)", e.Platform, strings.Join(e.Supported, ", "))
}
