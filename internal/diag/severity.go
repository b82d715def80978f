package diag

import (
	"strings"

	"github.com/pkg/errors"
)

// Severity упорядочена: SevError > SevWarning > SevInfo.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// String is the upper-case form shown by the pretty and JSON renderers.
func (s Severity) String() string {
	return strings.ToUpper(s.Label())
}

// Label is the lower-case form used by the short renderer and in flags.
func (s Severity) Label() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// ParseSeverity reads info, warning (warn) or error in any case.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return SevInfo, nil
	case "warning", "warn":
		return SevWarning, nil
	case "error":
		return SevError, nil
	}
	return SevInfo, errors.Errorf("unknown severity %q (want info|warning|error)", s)
}
