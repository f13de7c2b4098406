// Package translate implements the core streaming EOL and keyword
// translation engine: given a candidate "$...$" token it rewrites it in
// place (package-level Rewrite), and given a byte stream it drives that
// rewriter plus EOL normalization across buffer boundaries (Stream).
package translate

import (
	"github.com/aretext/wcxlate/keyword"
	"github.com/pkg/errors"
)

// Direction selects whether keyword tokens are expanded (repository to
// working copy) or contracted (working copy to repository).
type Direction int

const (
	Contract Direction = iota
	Expand
)

// ErrorKind classifies the failures the translator can report, matching
// the error kinds a caller may need to distinguish via errors.Is or a type switch.
type ErrorKind int

const (
	ErrKindNone ErrorKind = iota
	ErrKindInconsistentEOL
	ErrKindUnsupportedFeature
	ErrKindInvalidEncoding
	ErrKindIO
	ErrKindPrecondition
)

// Error is the error type returned by the translator for the kinds it
// itself detects (as opposed to I/O errors propagated verbatim from the
// caller's streams).
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func newError(kind ErrorKind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// ErrPrecondition is returned when an Options value has neither EOLOut nor
// Keywords set.
var ErrPrecondition = newError(ErrKindPrecondition, "precondition: at least one of EOLOut or Keywords must be set")

// Options configures one translation call.
type Options struct {
	// EOLOut, if non-nil, is the terminator bytes emitted for every line
	// ending encountered ("\n", "\r", or "\r\n"). If nil, EOL bytes are
	// copied through unchanged.
	EOLOut []byte

	// Repair suppresses inconsistent-EOL errors, translating each line
	// terminator independently instead of enforcing a single style.
	Repair bool

	// Keywords is the table consulted for keyword substitution. If nil,
	// keyword tokens are copied through unchanged (not even parsed).
	Keywords keyword.Table

	// Direction selects expand vs. contract for keyword substitution.
	Direction Direction
}

// Validate checks the precondition that at least one transformation is
// configured.
func (o Options) Validate() error {
	if o.EOLOut == nil && o.Keywords == nil {
		return ErrPrecondition
	}
	return nil
}

// NoTransform reports whether o would leave input bytes unchanged, used by
// the string-wrapper fast path.
func (o Options) NoTransform() bool {
	return o.EOLOut == nil && o.Keywords == nil
}

// wrapIO wraps an I/O error from the caller's streams with an "io: <context>"
// message, preserving errors.Is/As compatibility via error wrapping. The
// result is not an *Error; ErrKindIO is not attached.
func wrapIO(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "io: %s", context)
}
