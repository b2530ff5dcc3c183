// internal/scratch/outcome.go
package scratch

import "fmt"

// Kind classifies the result of a scratch operation.
type Kind int

const (
	// KindOk means the operation did what was asked.
	KindOk Kind = iota

	// KindSkipped means the operation was a deliberate no-op
	// (empty content, unchanged content, empty history).
	KindSkipped

	// KindWarning means the operation degraded gracefully and state
	// stayed consistent (missing history blob, unrestorable surface).
	KindWarning

	// KindError means the operation failed; the failure is confined to
	// this call and the operation is safe to retry.
	KindError
)

// Outcome is the tagged result of a scratch operation. Callers decide
// how to surface it: status bar, log line, or test assertion.
type Outcome struct {
	Kind   Kind
	Reason string // human-readable, suitable for the status bar
	Err    error  // underlying cause for KindError, may be nil
}

// Ok returns a success outcome.
func Ok() Outcome {
	return Outcome{Kind: KindOk}
}

// Okf returns a success outcome with a message for the user.
func Okf(format string, args ...interface{}) Outcome {
	return Outcome{Kind: KindOk, Reason: fmt.Sprintf(format, args...)}
}

// Skipped returns a deliberate no-op outcome.
func Skipped(reason string) Outcome {
	return Outcome{Kind: KindSkipped, Reason: reason}
}

// Warning returns a degraded-but-consistent outcome.
func Warning(reason string) Outcome {
	return Outcome{Kind: KindWarning, Reason: reason}
}

// Failure returns an operation-fatal outcome wrapping err.
func Failure(reason string, err error) Outcome {
	return Outcome{Kind: KindError, Reason: reason, Err: err}
}

// IsOk reports whether the operation fully succeeded.
func (o Outcome) IsOk() bool { return o.Kind == KindOk }

// String renders the outcome for logs.
func (o Outcome) String() string {
	switch o.Kind {
	case KindOk:
		if o.Reason == "" {
			return "ok"
		}
		return "ok: " + o.Reason
	case KindSkipped:
		return "skipped: " + o.Reason
	case KindWarning:
		return "warning: " + o.Reason
	default:
		if o.Err != nil {
			return fmt.Sprintf("error: %s: %v", o.Reason, o.Err)
		}
		return "error: " + o.Reason
	}
}
