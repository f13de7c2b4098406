package eol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObserveFirstSeenIsRecordedWithoutError(t *testing.T) {
	var st State
	err := st.Observe(LF, false)
	assert.NoError(t, err)
	assert.Equal(t, LF, st.seen)
}

func TestObserveMismatchWithoutRepairFails(t *testing.T) {
	var st State
	assert.NoError(t, st.Observe(LF, false))
	err := st.Observe(CRLF, false)
	assert.ErrorIs(t, err, ErrInconsistent)
}

func TestObserveMismatchWithRepairNeverFails(t *testing.T) {
	var st State
	assert.NoError(t, st.Observe(LF, true))
	assert.NoError(t, st.Observe(CRLF, true))
	assert.NoError(t, st.Observe(CR, true))
}

func TestObserveMatchingStyleNeverFails(t *testing.T) {
	var st State
	assert.NoError(t, st.Observe(CR, false))
	assert.NoError(t, st.Observe(CR, false))
}

func TestStyleBytes(t *testing.T) {
	assert.Equal(t, []byte("\n"), LF.Bytes())
	assert.Equal(t, []byte("\r"), CR.Bytes())
	assert.Equal(t, []byte("\r\n"), CRLF.Bytes())
	assert.Nil(t, Unset.Bytes())
}
