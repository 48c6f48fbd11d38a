// Package emit holds what the pinmap emitters share: the output formats, the
// generator tag stamped into every banner and timestamp handling.
package emit

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/pinmapgen/pinmapgen/pinmap"
)

// Generator tag written into every generated file.
const (
	Generator = "PinmapGen"
	Version   = "0.1.0"
)

// TimestampLayout is the banner timestamp format.
const TimestampLayout = "2006-01-02 15:04:05"

// A Format is one kind of generated artifact.
type Format string

// Supported formats.
const (
	FormatJSON        Format = "json"
	FormatArduino     Format = "arduino"
	FormatMicroPython Format = "micropython"
	FormatMarkdown    Format = "markdown"
	FormatMermaid     Format = "mermaid"
)

// Formats lists every format in generation order.
var Formats = []Format{FormatJSON, FormatMicroPython, FormatArduino, FormatMarkdown, FormatMermaid}

// DefaultFormats is what a generation run produces unless told otherwise.
var DefaultFormats = []Format{FormatJSON, FormatMicroPython, FormatArduino, FormatMarkdown}

// ParseFormats parses format names. "all" selects every format.
func ParseFormats(names []string) ([]Format, error) {
	if len(names) == 0 {
		return DefaultFormats, nil
	}
	seen := map[Format]bool{}
	var out []Format
	for _, n := range names {
		for _, part := range strings.Split(n, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			if part == "all" {
				return Formats, nil
			}
			f := Format(part)
			if !f.Valid() {
				return nil, errors.Errorf("unknown output format %q", part)
			}
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	if len(out) == 0 {
		return DefaultFormats, nil
	}
	return out, nil
}

// Include returns formats with f appended unless it is already there.
func Include(formats []Format, f Format) []Format {
	for _, have := range formats {
		if have == f {
			return formats
		}
	}
	return append(append([]Format(nil), formats...), f)
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// An Emitter renders a project into one artifact's text.
type Emitter interface {
	Render(p *pinmap.Project) (string, error)
}

var timestampLineRe = regexp.MustCompile(`(?m)^(.*(?:Generated: |"timestamp": )).*$`)

// StripTimestamp blanks the generation timestamp so two renders of the same
// project can be compared byte for byte.
func StripTimestamp(text string) string {
	return timestampLineRe.ReplaceAllString(text, "${1}<timestamp>")
}

// MCUName is the upper-case MCU name printed in banners.
func MCUName(p *pinmap.Project) string {
	if p.MCU == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(p.MCU)
}

// ValidateRoles checks p and then rejects every pin whose role the target
// cannot serve. All problems come back in one *pinmap.ConfigurationError.
func ValidateRoles(p *pinmap.Project, target string, supports func(pinmap.Role) bool) error {
	if err := p.Validate(); err != nil {
		return err
	}
	var errs error
	for _, pin := range p.Pins {
		if !supports(pin.Role) {
			errs = multierr.Append(errs, pinmap.NewConfigurationError(
				"pin %q: role %s is not supported on %s", pin.Name, pin.Role, target))
		}
	}
	return pinmap.ConfigurationErrorFrom(errs)
}
