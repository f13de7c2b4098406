package translate

import "bytes"

// Bytes runs Stream over an in-memory buffer and returns the translated
// result. If opts.NoTransform() is true (no EOL or keyword translation
// configured), it returns src unchanged without invoking the engine.
func Bytes(src []byte, opts Options) ([]byte, error) {
	if opts.NoTransform() {
		return src, nil
	}

	var dst bytes.Buffer
	dst.Grow(len(src))
	if err := Stream(bytes.NewReader(src), &dst, opts); err != nil {
		return nil, err
	}
	return dst.Bytes(), nil
}

// String is the string-typed convenience wrapper around Bytes.
func String(src string, opts Options) (string, error) {
	out, err := Bytes([]byte(src), opts)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
