package transcript

import "fmt"

// ParseError reports a malformed numeric or text field.
type ParseError struct {
	Index int // record or token index, -1 when unknown
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("record %d: parse %s %q: %v", e.Index, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FormatError reports a record with the wrong field count or a missing
// required nested field.
type FormatError struct {
	Index  int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Index < 0 {
		return e.Reason
	}
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}

// PreconditionError reports input to the merge that is not in ascending
// time order. It is only raised when order checking is enabled.
type PreconditionError struct {
	Kind  string // "segment" or "token"
	Index int
	Prev  float64
	Got   float64
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s %d out of order: start %g after %g", e.Kind, e.Index, e.Got, e.Prev)
}

// ExternalToolError wraps a failure of an external collaborator such as
// ffmpeg or a punctuation service.
type ExternalToolError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *ExternalToolError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed: %v\n%s", e.Tool, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }
