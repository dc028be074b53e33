package plugins

import "fmt"

// PluginExceptionID is the fixed identity of the diagnostic reported
// when a plugin throws during instantiation or from a hook.
const PluginExceptionID = "QUILL1001"

// Severity indicates how serious a diagnostic is
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one message produced during plugin execution. Pipeline
// diagnostics carry no source location.
type Diagnostic struct {
	ID       string
	Severity Severity
	Message  string
}

// NewPluginException builds the diagnostic reported when the named
// plugin (or binding) fails with err.
func NewPluginException(name string, err error) Diagnostic {
	return Diagnostic{
		ID:       PluginExceptionID,
		Severity: SeverityError,
		Message:  fmt.Sprintf("Plugin exception thrown from %s. Full exception: %v", name, err),
	}
}

// DiagnosticBag is the ordered, append-only diagnostics sequence shared
// by reference between the pipeline and every hook invocation within
// one phase. It is not safe for concurrent use; hook invocation is
// strictly sequential.
type DiagnosticBag struct {
	items []Diagnostic
}

// NewDiagnosticBag creates an empty bag.
func NewDiagnosticBag() *DiagnosticBag {
	return &DiagnosticBag{}
}

// Add appends a diagnostic to the bag.
func (b *DiagnosticBag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// Items returns a copy of the accumulated diagnostics in order.
func (b *DiagnosticBag) Items() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)
	return out
}

// Len returns the number of accumulated diagnostics.
func (b *DiagnosticBag) Len() int { return len(b.items) }

// Clear empties the bag. The pipeline clears it at the start of each
// extension-point phase.
func (b *DiagnosticBag) Clear() { b.items = b.items[:0] }
