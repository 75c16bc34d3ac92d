package diagnostic

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"accessor-generator/internal/common"
)

// Severity orders findings from informational to blocking.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Diagnostic is one finding about an aggregate or one of its fields.
type Diagnostic struct {
	Severity Severity
	// Code is one of the Code* constants, or empty for plain reports.
	Code    string
	Message string
	// Source is the file or declaration document the aggregate came from.
	Source string
	// FieldPath is "Aggregate.field" when the finding concerns one field.
	FieldPath string
	// Suggestions are replacement identifiers, e.g. "Option" for "Optional".
	Suggestions []string
}

// String renders "[source] Aggregate.field: [CODE] message (suggestion: x)",
// dropping the parts that are empty.
func (d Diagnostic) String() string {
	var sb strings.Builder

	if d.Source != "" {
		sb.WriteString("[" + d.Source + "]")
	}

	if d.FieldPath != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(d.FieldPath)
	}

	if sb.Len() > 0 {
		sb.WriteString(": ")
	}

	if d.Code != "" {
		fmt.Fprintf(&sb, "[%s] ", d.Code)
	}

	sb.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		sb.WriteString(" (suggestion: " + strings.Join(d.Suggestions, ", ") + ")")
	}

	return sb.String()
}

// Diagnostics collects the findings of a check run, bucketed by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

func (d *Diagnostics) add(item Diagnostic) {
	switch item.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, item)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, item)
	default:
		d.Infos = append(d.Infos, item)
	}
}

// AddError records a blocking finding.
func (d *Diagnostics) AddError(code, message, source, fieldPath string) {
	d.add(Diagnostic{Severity: SeverityError, Code: code, Message: message, Source: source, FieldPath: fieldPath})
}

// AddWarning records a non-blocking finding with optional replacements.
func (d *Diagnostics) AddWarning(code, message, source, fieldPath string, suggestions ...string) {
	d.add(Diagnostic{
		Severity:    SeverityWarning,
		Code:        code,
		Message:     message,
		Source:      source,
		FieldPath:   fieldPath,
		Suggestions: suggestions,
	})
}

func (d *Diagnostics) AddInfo(code, message, source, fieldPath string) {
	d.add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, Source: source, FieldPath: fieldPath})
}

// AddFailure records a synthesis failure for an aggregate declared in
// source. The code is taken from the error when it carries one.
func (d *Diagnostics) AddFailure(source string, err error) {
	d.AddError(CodeOf(err), err.Error(), source, "")
}

// Merge appends other's findings to d.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid reports whether nothing blocks generation.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Error joins every error finding into one error, or returns nil.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Print writes one line per finding: infos (only when verbose), then
// warnings, then errors.
func (d *Diagnostics) Print(w io.Writer, verbose bool) error {
	groups := [][]Diagnostic{d.Warnings, d.Errors}
	if verbose {
		groups = append([][]Diagnostic{d.Infos}, groups...)
	}

	for _, group := range groups {
		for _, item := range group {
			if _, err := fmt.Fprintln(w, item.String()); err != nil {
				return err
			}
		}
	}

	return nil
}
