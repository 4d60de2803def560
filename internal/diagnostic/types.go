package diagnostic

import (
	"fmt"
	"strings"

	"query-mapper/internal/common"
)

// Diagnostic codes.
const (
	CodeRecursionTruncated = "recursion-truncated"
	CodeUnsupportedType    = "unsupported-type"
	CodeEmptyStruct        = "empty-struct"
	CodeDuplicateKey       = "duplicate-key"
	CodeFieldIgnored       = "field-ignored"
)

// Diagnostics holds all diagnostic information from a plan build.
type Diagnostics struct {
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Type is the root type the plan was built for.
	Type string
	// Key is the flattened key (or key prefix) the diagnostic relates to.
	Key string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	default:
		return common.UnknownStr
	}
}

// AddWarning adds a warning diagnostic: a field that has no keys although it was not
// excluded.
func (d *Diagnostics) AddWarning(code, message, typ, key string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Type:     typ,
		Key:      key,
	})
}

// AddInfo adds an info diagnostic: a field excluded on purpose.
func (d *Diagnostics) AddInfo(code, message, typ, key string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Type:     typ,
		Key:      key,
	})
}

// All returns every diagnostic, warnings first.
func (d Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Warnings)+len(d.Infos))
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// WithCode returns the diagnostics of any severity carrying code.
func (d Diagnostics) WithCode(code string) []Diagnostic {
	var out []Diagnostic
	for _, diag := range d.All() {
		if diag.Code == code {
			out = append(out, diag)
		}
	}

	return out
}

// Empty reports whether nothing was left out.
func (d Diagnostics) Empty() bool {
	return len(d.Warnings) == 0 && len(d.Infos) == 0
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.Key != "" {
		prefix = append(prefix, d.Key)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
