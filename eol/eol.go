// Package eol implements end-of-line style detection and consistency
// enforcement for the streaming translator.
package eol

import "github.com/pkg/errors"

// Style identifies a line-terminator spelling.
type Style int

const (
	// Unset indicates no terminator has been observed yet.
	Unset Style = iota
	LF
	CR
	CRLF
)

func (s Style) String() string {
	switch s {
	case LF:
		return "LF"
	case CR:
		return "CR"
	case CRLF:
		return "CRLF"
	default:
		return "unset"
	}
}

// Bytes returns the literal terminator bytes for a style.
func (s Style) Bytes() []byte {
	switch s {
	case LF:
		return []byte{'\n'}
	case CR:
		return []byte{'\r'}
	case CRLF:
		return []byte{'\r', '\n'}
	default:
		return nil
	}
}

// ErrInconsistent is returned when repair is disabled and a second-seen
// EOL style disagrees with the first one observed in the stream.
var ErrInconsistent = errors.New("inconsistent-eol")

// State tracks the first EOL style seen in a stream, for consistency
// enforcement across repeated calls to Observe.
type State struct {
	seen Style
}

// Observe records seen as the style for this translation the first time
// it is called. On later calls, if seen disagrees with the recorded style
// and repair is false, it returns ErrInconsistent; otherwise it returns
// nil (repair=true translates each terminator independently, and a
// matching style is never an error).
func (st *State) Observe(seen Style, repair bool) error {
	if st.seen == Unset {
		st.seen = seen
		return nil
	}
	if st.seen != seen && !repair {
		return ErrInconsistent
	}
	return nil
}
