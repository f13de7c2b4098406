package translate

import (
	"bufio"
	"io"

	"github.com/aretext/wcxlate/eol"
)

// DefaultChunkSize is the suggested read chunk size for Stream.
const DefaultChunkSize = 16 * 1024

// Stream drives the keyword rewriter and EOL normalizer over src, writing
// the translated bytes to dst. It maintains cross-chunk state for a
// partially-read keyword token and a pending CR awaiting its LF peer, so
// it can be called with arbitrarily small reads from src without
// corrupting tokens that straddle buffer boundaries.
//
// Stream returns ErrPrecondition if opts has neither EOLOut nor Keywords
// set, an *Error with Kind ErrKindInconsistentEOL if Repair is false and
// the input mixes EOL styles, or a wrapped I/O error from src/dst.
func Stream(src io.Reader, dst io.Writer, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	s := &streamer{
		opts: opts,
		out:  bufio.NewWriterSize(dst, DefaultChunkSize),
	}

	chunk := make([]byte, DefaultChunkSize)
	for {
		n, rerr := src.Read(chunk)
		if n > 0 {
			if err := s.processChunk(chunk[:n]); err != nil {
				return err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return wrapIO(rerr, "read")
		}
	}

	if err := s.finish(); err != nil {
		return err
	}
	return wrapIO(s.out.Flush(), "flush")
}

type streamer struct {
	opts Options

	out *bufio.Writer

	kwBuf     [MaxTokenLen]byte
	kwLen     int
	inKeyword bool
	pendingCR bool

	eolState eol.State
}

func (s *streamer) wantDollar() bool { return s.opts.Keywords != nil }
func (s *streamer) wantEOL() bool    { return s.opts.EOLOut != nil }

func (s *streamer) writeRaw(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	_, err := s.out.Write(p)
	return wrapIO(err, "write")
}

func (s *streamer) emitEOL(style eol.Style) error {
	if err := s.eolState.Observe(style, s.opts.Repair); err != nil {
		return newError(ErrKindInconsistentEOL, err.Error())
	}
	_, err := s.out.Write(s.opts.EOLOut)
	return wrapIO(err, "write eol")
}

// processChunk advances the state machine over one chunk of input.
func (s *streamer) processChunk(data []byte) error {
	i := 0
	for i < len(data) {
		if s.pendingCR {
			b := data[i]
			i++
			s.pendingCR = false
			if b == '\n' {
				if err := s.emitEOL(eol.CRLF); err != nil {
					return err
				}
				continue
			}
			if err := s.emitEOL(eol.CR); err != nil {
				return err
			}
			if err := s.dispatchScanning(b); err != nil {
				return err
			}
			continue
		}

		if s.inKeyword {
			b := data[i]
			i++
			if err := s.dispatchKeyword(b); err != nil {
				return err
			}
			continue
		}

		// Fast path: scan a run of bytes uninteresting to the current
		// options and emit them in one write.
		j := i
		for j < len(data) && !s.isInteresting(data[j]) {
			j++
		}
		if j > i {
			if err := s.writeRaw(data[i:j]); err != nil {
				return err
			}
			i = j
		}
		if i >= len(data) {
			break
		}

		b := data[i]
		i++
		if err := s.dispatchScanning(b); err != nil {
			return err
		}
	}
	return nil
}

func (s *streamer) isInteresting(b byte) bool {
	if s.wantDollar() && b == '$' {
		return true
	}
	if s.wantEOL() && (b == '\r' || b == '\n') {
		return true
	}
	return false
}

// dispatchScanning handles one byte while not inside a keyword token and
// without a pending CR.
func (s *streamer) dispatchScanning(b byte) error {
	switch {
	case b == '$' && s.wantDollar():
		s.kwBuf[0] = '$'
		s.kwLen = 1
		s.inKeyword = true
		return nil
	case b == '\r' && s.wantEOL():
		s.pendingCR = true
		return nil
	case b == '\n' && s.wantEOL():
		return s.emitEOL(eol.LF)
	default:
		return s.writeRaw([]byte{b})
	}
}

// dispatchKeyword handles one byte while a keyword token is open.
func (s *streamer) dispatchKeyword(b byte) error {
	if b == '$' {
		s.kwBuf[s.kwLen] = b
		s.kwLen++
		newLen, ok := Rewrite(s.kwBuf[:], s.kwLen, s.opts.Direction, s.opts.Keywords)
		s.inKeyword = false
		if ok {
			return s.writeRaw(s.kwBuf[:newLen])
		}
		// Emit the failed candidate without its closing '$', then
		// reconsider that '$' as the start of a new candidate token.
		if err := s.writeRaw(s.kwBuf[:s.kwLen-1]); err != nil {
			return err
		}
		return s.dispatchScanning('$')
	}

	if b == '\r' || b == '\n' {
		if err := s.writeRaw(s.kwBuf[:s.kwLen]); err != nil {
			return err
		}
		s.inKeyword = false
		return s.dispatchScanning(b)
	}

	if s.kwLen == MaxTokenLen-1 {
		if err := s.writeRaw(s.kwBuf[:s.kwLen]); err != nil {
			return err
		}
		s.inKeyword = false
		return s.dispatchScanning(b)
	}

	s.kwBuf[s.kwLen] = b
	s.kwLen++
	return nil
}

// finish flushes any carried state at end-of-input: a pending CR becomes a
// standalone CR terminator, and an unterminated keyword buffer is written
// out raw (a partial CRLF pair is never invented, and a dangling '$' is
// never silently dropped).
func (s *streamer) finish() error {
	if s.pendingCR {
		s.pendingCR = false
		if err := s.emitEOL(eol.CR); err != nil {
			return err
		}
	}
	if s.inKeyword {
		s.inKeyword = false
		if err := s.writeRaw(s.kwBuf[:s.kwLen]); err != nil {
			return err
		}
	}
	return nil
}
