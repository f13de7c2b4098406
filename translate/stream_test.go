package translate

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretext/wcxlate/keyword"
)

// chunkReader forces Stream to read in small, fixed-size pieces so
// cross-chunk carry state (open keyword tokens, pending CR) is exercised.
type chunkReader struct {
	data []byte
	pos  int
	size int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := r.size
	if n > len(p) {
		n = len(p)
	}
	if r.pos+n > len(r.data) {
		n = len(r.data) - r.pos
	}
	copy(p, r.data[r.pos:r.pos+n])
	r.pos += n
	return n, nil
}

func streamString(t *testing.T, chunkSize int, input string, opts Options) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := Stream(&chunkReader{data: []byte(input), size: chunkSize}, &out, opts)
	return out.String(), err
}

func TestStreamPreconditionViolation(t *testing.T) {
	_, err := streamString(t, 4, "anything$goes\r\nhere", Options{})
	require.Error(t, err)
	var xerr *Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, ErrKindPrecondition, xerr.Kind)
}

func TestStreamS1EOLNormalizationLFtoCRLF(t *testing.T) {
	got, err := streamString(t, 64, "a\nb\nc", Options{EOLOut: []byte("\r\n")})
	require.NoError(t, err)
	assert.Equal(t, "a\r\nb\r\nc", got)
}

func TestStreamS1InconsistentEOLWithoutRepair(t *testing.T) {
	_, err := streamString(t, 64, "a\nb\r\nc", Options{EOLOut: []byte("\r\n")})
	require.Error(t, err)
	var xerr *Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, ErrKindInconsistentEOL, xerr.Kind)
}

func TestStreamRepairNeverReturnsInconsistentEOL(t *testing.T) {
	_, err := streamString(t, 1, "a\nb\r\nc\rd", Options{EOLOut: []byte("\n"), Repair: true})
	require.NoError(t, err)
}

func TestStreamEOLIdempotence(t *testing.T) {
	opts := Options{EOLOut: []byte("\n"), Repair: true}
	once, err := streamString(t, 64, "a\r\nb\rc\n", opts)
	require.NoError(t, err)

	twice, err := streamString(t, 64, once, opts)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestStreamS2KeywordExpandAndContract(t *testing.T) {
	table := keyword.Table{"Rev": "42"}
	expanded, err := streamString(t, 64, "Rev: $Rev$ done", Options{Keywords: table, Direction: Expand})
	require.NoError(t, err)
	assert.Equal(t, "Rev: $Rev: 42 $ done", expanded)

	contracted, err := streamString(t, 64, expanded, Options{Keywords: table, Direction: Contract})
	require.NoError(t, err)
	assert.Equal(t, "Rev: $Rev$ done", contracted)
}

func TestStreamS4TokenSpanningChunks(t *testing.T) {
	table := keyword.Table{"Revision": "7"}
	got, err := streamString(t, 7, "pre$Revision$ post", Options{Keywords: table, Direction: Expand})
	require.NoError(t, err)
	assert.Equal(t, "pre$Revision: 7 $ post", got)
}

func TestStreamS5UnknownKeywordPassesThrough(t *testing.T) {
	got, err := streamString(t, 2, "$Foo$", Options{Keywords: keyword.Table{}, Direction: Expand})
	require.NoError(t, err)
	assert.Equal(t, "$Foo$", got)
}

func TestStreamAbandonedKeywordOnNewline(t *testing.T) {
	table := keyword.Table{"Rev": "42"}
	got, err := streamString(t, 3, "$Rev\nnext", Options{Keywords: table, EOLOut: []byte("\n"), Direction: Expand})
	require.NoError(t, err)
	assert.Equal(t, "$Rev\nnext", got)
}

func TestStreamAdjacentTokensAfterFailedMatch(t *testing.T) {
	table := keyword.Table{"Bar": "x"}
	got, err := streamString(t, 2, "$Foo$Bar$", Options{Keywords: table, Direction: Expand})
	require.NoError(t, err)
	assert.Equal(t, "$Foo$Bar: x $", got)
}

func TestStreamNulBytesPassThrough(t *testing.T) {
	input := "a\x00b\x00$Rev$"
	table := keyword.Table{"Rev": "1"}
	got, err := streamString(t, 3, input, Options{Keywords: table, Direction: Expand})
	require.NoError(t, err)
	assert.Equal(t, "a\x00b\x00$Rev: 1 $", got)
}

func TestStreamOversizedTokenNeverMatches(t *testing.T) {
	table := keyword.Table{"Rev": "1"}
	long := "$Rev" + string(bytes.Repeat([]byte("x"), 260)) + "$"
	got, err := streamString(t, 16, long, Options{Keywords: table, Direction: Expand})
	require.NoError(t, err)
	assert.Equal(t, long, got)
}

func TestStreamTrailingPendingCREmitsCR(t *testing.T) {
	got, err := streamString(t, 64, "abc\r", Options{EOLOut: []byte("\r\n")})
	require.NoError(t, err)
	assert.Equal(t, "abc\r\n", got)
}

func TestStreamTrailingOpenKeywordWrittenRaw(t *testing.T) {
	table := keyword.Table{"Rev": "1"}
	got, err := streamString(t, 2, "abc$Re", Options{Keywords: table, Direction: Expand})
	require.NoError(t, err)
	assert.Equal(t, "abc$Re", got)
}
