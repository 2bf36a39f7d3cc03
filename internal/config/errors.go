package config

import (
	"fmt"
	"strings"
)

// Redacted is the marker substituted for secret values in every rendering,
// log line, and error message produced by this package.
const Redacted = "***"

// SourceFormatError reports an unparsable configuration source. Line is zero
// when the underlying parser does not report a position.
type SourceFormatError struct {
	Source string
	Line   int
	Err    error
}

func (e *SourceFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("source %q: line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("source %q: %v", e.Source, e.Err)
}

func (e *SourceFormatError) Unwrap() error { return e.Err }

// UnknownPlaceholderError reports a {NAME} reference that matches no config
// key and no built-in variable.
type UnknownPlaceholderError struct {
	Name    string
	Section string
	Key     string
}

func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("%s.%s: unknown placeholder {%s}", e.Section, e.Key, e.Name)
}

// InterpolationCycleError reports a placeholder chain that references itself.
// Cycle holds the section.key names in resolution order, with the first entry
// repeated at the end.
type InterpolationCycleError struct {
	Cycle []string
}

func (e *InterpolationCycleError) Error() string {
	return "interpolation cycle: " + strings.Join(e.Cycle, " -> ")
}

// TypeCoercionError reports a resolved string that cannot be converted to the
// declared kind. For secret keys Reason never contains the value.
type TypeCoercionError struct {
	Section string
	Key     string
	Reason  string
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Section, e.Key, e.Reason)
}

// ConstraintViolationError reports a typed value that fails its schema
// predicate or a cross-key rule.
type ConstraintViolationError struct {
	Section string
	Key     string
	Reason  string
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Section, e.Key, e.Reason)
}

// UnknownKeyError reports a key that has no schema entry: either a typo in a
// source, or programmatic access to a key that was never declared.
type UnknownKeyError struct {
	Section string
	Key     string
	Source  string
}

func (e *UnknownKeyError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s.%s: unknown key (from %s)", e.Section, e.Key, e.Source)
	}
	return fmt.Sprintf("%s.%s: unknown key", e.Section, e.Key)
}

// ResolutionError aggregates every problem found during a resolution run.
// Resolution never stops at the first problem; callers get the full list.
type ResolutionError struct {
	Problems []error
}

func (e *ResolutionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "configuration resolution failed with %d problem(s):", len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(p.Error())
	}
	return b.String()
}

// Unwrap exposes the collected problems to errors.Is and errors.As.
func (e *ResolutionError) Unwrap() []error { return e.Problems }
