package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostic codes shared across packages. Codes identify the kind of
// problem; the message carries the human-readable detail.
const (
	CodeMalformedAnnotation    = "malformed_annotation"
	CodeUnknownHeader          = "unknown_header"
	CodeMissingValue           = "missing_value"
	CodeConflict               = "conflict"
	CodeIncomplete             = "incomplete"
	CodePositionalNeedsRename  = "positional_needs_rename"
	CodeCapabilityMissing      = "capability_missing"
	CodeCapabilityUnverifiable = "capability_unverifiable"
	CodeInvalidManifest        = "invalid_manifest"
)

// Diagnostics accumulates all diagnostics produced by one generation run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic is a single finding tied to a site in the manifest.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a stable identifier for this kind of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Site is the dotted path of the offending declaration,
	// e.g. "AuthEvent.Login.Trap" or "PageFault".
	Site string
}

// Severity is the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError records an error diagnostic.
func (d *Diagnostics) AddError(code, message, site string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Site:     site,
	})
}

// AddErrorf records an error diagnostic with a formatted message.
func (d *Diagnostics) AddErrorf(code, site, format string, args ...any) {
	d.AddError(code, fmt.Sprintf(format, args...), site)
}

// AddWarning records a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, site string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Site:     site,
	})
}

// HasErrors reports whether any error diagnostics were recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends all diagnostics from other into d.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}

	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// All returns warnings followed by errors.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Warnings)+len(d.Errors))
	out = append(out, d.Warnings...)
	out = append(out, d.Errors...)

	return out
}

// Error returns a combined error from all error diagnostics, or nil.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted one-line rendering of the diagnostic.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Site != "" {
		return d.Site + ": " + msg
	}

	return msg
}
