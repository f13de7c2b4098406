package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringToCanonicalNormalizesEOLAndEncoding(t *testing.T) {
	latin1 := []byte{'h', 0xE9, 'l', 'l', 'o', '\r', '\n'}
	out, err := StringToCanonical(latin1, "ISO-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "héllo\n", string(out))
}

func TestDetranslateStringToPlatformEOL(t *testing.T) {
	out, err := DetranslateString([]byte("hello\n"), []byte("\r\n"), "", false)
	require.NoError(t, err)
	assert.Equal(t, "hello\r\n", string(out))
}
