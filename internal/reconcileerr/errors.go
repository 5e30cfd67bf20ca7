/*
MIT License

Copyright (c) 2025 Advanced Micro Devices, Inc.

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// Package reconcileerr classifies the errors the endpoint resource
// reconciler surfaces to its callers into the four kinds the facade
// exposes: Configuration, Infra, NotFound, Validation.
package reconcileerr

import "errors"

// Kind classifies a reconcile error's semantics.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindInfra
	KindNotFound
	KindValidation
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "Configuration"
	case KindInfra:
		return "Infra"
	case KindNotFound:
		return "NotFound"
	case KindValidation:
		return "Validation"
	default:
		return "Unknown"
	}
}

// Error is a structured error carrying one of the four kinds plus a
// machine-readable reason and a human-readable message.
type Error interface {
	error
	Kind() Kind
	Reason() string
	UserMessage() string
}

type reconcileError struct {
	err     error
	kind    Kind
	reason  string
	message string
}

func (e *reconcileError) Error() string {
	if e.reason != "" && e.message != "" {
		return e.reason + ": " + e.message
	}
	if e.reason != "" {
		return e.reason
	}
	if e.message != "" {
		return e.message
	}
	if e.err != nil {
		return e.err.Error()
	}
	return "unknown error"
}

func (e *reconcileError) Unwrap() error { return e.err }
func (e *reconcileError) Kind() Kind    { return e.kind }
func (e *reconcileError) Reason() string { return e.reason }
func (e *reconcileError) UserMessage() string { return e.message }

// NewConfiguration reports a template-resolution failure: missing
// template key, missing substitution variable, or a parse failure after
// substitution. The message should include the failing text when the
// cause is a parse failure.
func NewConfiguration(reason, message string, cause error) error {
	return &reconcileError{err: cause, kind: KindConfiguration, reason: reason, message: message}
}

// NewInfra reports an unrecoverable platform call failure: the
// create-or-update or delete ladder exhausted its fallbacks.
func NewInfra(reason, message string, cause error) error {
	return &reconcileError{err: cause, kind: KindInfra, reason: reason, message: message}
}

// NewNotFound reports an observer lookup whose canonical and legacy names
// both missed.
func NewNotFound(reason, message string, cause error) error {
	return &reconcileError{err: cause, kind: KindNotFound, reason: reason, message: message}
}

// NewValidation reports an endpoint record violating a derivable
// invariant: unknown mode, a workload missing its main container, an
// invalid name/id combination.
func NewValidation(reason, message string, cause error) error {
	return &reconcileError{err: cause, kind: KindValidation, reason: reason, message: message}
}

// Is reports whether err is a reconcile Error of the given kind.
func Is(err error, kind Kind) bool {
	var re Error
	if !errors.As(err, &re) {
		return false
	}
	return re.Kind() == kind
}

// KindOf extracts the Kind of err, or KindUnknown if err is not a
// reconcile Error.
func KindOf(err error) Kind {
	var re Error
	if !errors.As(err, &re) {
		return KindUnknown
	}
	return re.Kind()
}

// Summary aggregates, by kind, the errors collected while processing a
// batch. The observer's GetAll and the delete composition do not build
// one; they log per-item failures directly.
type Summary struct {
	Configuration []Error
	Infra         []Error
	NotFound      []Error
	Validation    []Error
	Unclassified  []error
}

// HasAny reports whether the summary holds any error at all.
func (s Summary) HasAny() bool {
	return len(s.Configuration) > 0 || len(s.Infra) > 0 || len(s.NotFound) > 0 ||
		len(s.Validation) > 0 || len(s.Unclassified) > 0
}

// BuildSummary walks a list of errors (which may be nil, wrapped, or
// errors.Join-ed) and classifies every reconcile Error it finds by kind.
// Plain errors that carry no reconcileerr.Error in their chain are
// collected as Unclassified so callers don't silently drop unexpected
// failures.
func BuildSummary(errs []error) Summary {
	var s Summary
	seen := make(map[*reconcileError]bool)

	for _, err := range errs {
		if err == nil {
			continue
		}
		found := false
		walk(err, func(e error) {
			re, ok := e.(*reconcileError)
			if !ok {
				return
			}
			found = true
			if seen[re] {
				return
			}
			seen[re] = true
			switch re.kind {
			case KindConfiguration:
				s.Configuration = append(s.Configuration, re)
			case KindInfra:
				s.Infra = append(s.Infra, re)
			case KindNotFound:
				s.NotFound = append(s.NotFound, re)
			case KindValidation:
				s.Validation = append(s.Validation, re)
			default:
				s.Unclassified = append(s.Unclassified, e)
			}
		})
		if !found {
			s.Unclassified = append(s.Unclassified, err)
		}
	}
	return s
}

// walk traverses an error chain depth-first, visiting both errors.Join
// trees (Unwrap() []error) and singly wrapped errors (Unwrap() error).
func walk(err error, fn func(error)) {
	if err == nil {
		return
	}
	fn(err)

	type multiUnwrapper interface {
		Unwrap() []error
	}
	if u, ok := err.(multiUnwrapper); ok {
		for _, e := range u.Unwrap() {
			walk(e, fn)
		}
		return
	}
	if e := errors.Unwrap(err); e != nil {
		walk(e, fn)
	}
}
