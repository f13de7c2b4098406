package translate

import "github.com/aretext/wcxlate/textenc"

// StringToCanonical transcodes value from fromEncoding (or assumes
// textenc.Canonical when fromEncoding is empty) into the canonical
// encoding, then normalizes all EOLs to "\n" with no keyword translation.
func StringToCanonical(value []byte, fromEncoding string) ([]byte, error) {
	canonical, err := textenc.ToCanonical(value, fromEncoding, false)
	if err != nil {
		return nil, err
	}
	return Bytes(canonical, Options{EOLOut: []byte("\n")})
}

// DetranslateString is the inverse of StringToCanonical: it normalizes
// EOLs to platformEOL, then transcodes to targetEncoding. If fuzzy is
// true, characters unsupported by targetEncoding are replaced with '?'
// instead of failing with ErrInvalidEncoding; callers pass fuzzy=true for
// "for_output" display conversions and fuzzy=false when an invalid
// encoding should be surfaced as an error.
func DetranslateString(value []byte, platformEOL []byte, targetEncoding string, fuzzy bool) ([]byte, error) {
	normalized, err := Bytes(value, Options{EOLOut: platformEOL})
	if err != nil {
		return nil, err
	}
	return textenc.FromCanonical(normalized, targetEncoding, fuzzy)
}
