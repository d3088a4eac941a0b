package sirius

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	err := New(IOFailure, "raster.Open", errors.New("file not found"))
	assert.Equal(t, "raster.Open: i/o failure: file not found", err.Error())
}

func TestError_Error_NoCause(t *testing.T) {
	err := New(EndOfStream, "stream.Read", nil)
	assert.Equal(t, "stream.Read: end of stream", err.Error())
}

func TestError_Is(t *testing.T) {
	err := New(EndOfStream, "stream.Read", errors.New("eof"))
	assert.True(t, errors.Is(err, ErrEndOfStream))
	assert.False(t, errors.Is(err, ErrQueueInactive))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := New(BackendFailure, "fft.Forward", cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestKindOf(t *testing.T) {
	err := New(InvalidArgument, "translation.Shift", nil)
	assert.Equal(t, InvalidArgument, KindOf(err))
	assert.Equal(t, Unknown, KindOf(errors.New("plain error")))
	assert.Equal(t, Unknown, KindOf(nil))
}

func TestKind_String(t *testing.T) {
	cases := map[Kind]string{
		InvalidArgument: "invalid argument",
		IOFailure:       "i/o failure",
		BackendFailure:  "backend failure",
		QueueInactive:   "queue inactive",
		EndOfStream:     "end of stream",
		Unknown:         "unknown",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}
