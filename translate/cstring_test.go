package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretext/wcxlate/keyword"
)

func TestBytesConservationWhenBothTransformsDisabled(t *testing.T) {
	src := []byte("anything$goes\r\nhere\x00and here")
	out, err := Bytes(src, Options{})
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestBytesFastPathReturnsSameUnderlyingArray(t *testing.T) {
	src := []byte("unchanged")
	out, err := Bytes(src, Options{})
	require.NoError(t, err)
	// The fast path must bypass the engine entirely, returning src itself.
	assert.Same(t, &src[0], &out[0])
}

func TestBytesRunsEngineWhenEOLConfigured(t *testing.T) {
	out, err := Bytes([]byte("a\nb"), Options{EOLOut: []byte("\r\n")})
	require.NoError(t, err)
	assert.Equal(t, "a\r\nb", string(out))
}

func TestStringWrapper(t *testing.T) {
	table := keyword.Table{"Rev": "1"}
	got, err := String("$Rev$", Options{Keywords: table, Direction: Expand})
	require.NoError(t, err)
	assert.Equal(t, "$Rev: 1 $", got)
}
