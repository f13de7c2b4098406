// Package textenc transcodes byte strings between named character
// encodings and the module's canonical UTF-8 text representation, used by
// the string-level convenience wrappers in package translate.
package textenc

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Canonical is the encoding this module stores and scans text in.
const Canonical = "UTF-8"

// ErrInvalidEncoding is returned when a transcode fails and the caller did
// not request the fuzzy fallback.
var ErrInvalidEncoding = errors.New("invalid-encoding")

// Lookup resolves an encoding name (e.g. "UTF-8", "ISO-8859-1",
// "windows-1252") to an encoding.Encoding. An empty name resolves to the
// canonical UTF-8 encoding.
func Lookup(name string) (encoding.Encoding, error) {
	if name == "" || name == Canonical {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err == nil {
		return enc, nil
	}
	// htmlindex covers the encodings the web platform recognizes. The
	// charmap table is also searched, but only by htmlindex canonical
	// name, so a name htmlindex.Get rejects is not resolved here either.
	for _, named := range charmap.All {
		if n, nerr := htmlindex.Name(named); nerr == nil && n == name {
			return named, nil
		}
	}
	return nil, errors.Wrapf(err, "textenc.Lookup(%q)", name)
}

// ToCanonical transcodes value from the named encoding into UTF-8. If
// fuzzy is true, encoding errors are repaired by substituting the
// replacement character instead of failing.
func ToCanonical(value []byte, fromName string, fuzzy bool) ([]byte, error) {
	from, err := Lookup(fromName)
	if err != nil {
		return nil, err
	}
	return transcode(value, from.NewDecoder(), fuzzy)
}

// FromCanonical transcodes a UTF-8 value into the named encoding. If fuzzy
// is true, characters unsupported by the target encoding are replaced
// with '?' instead of failing.
func FromCanonical(value []byte, toName string, fuzzy bool) ([]byte, error) {
	to, err := Lookup(toName)
	if err != nil {
		return nil, err
	}
	return transcode(value, to.NewEncoder(), fuzzy)
}

func transcode(value []byte, t transform.Transformer, fuzzy bool) ([]byte, error) {
	if fuzzy {
		t = encoding.ReplaceUnsupported(t)
	}
	r := transform.NewReader(bytes.NewReader(value), t)
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidEncoding, "transcode: %s", err)
	}
	return out, nil
}
