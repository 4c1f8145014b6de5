package fmtio_test

import (
	"errors"
	"testing"

	"github.com/nikhil-mk/f18"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginRejectsMalformedFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format string
	}{
		"unclosed literal":     {format: "('hello)"},
		"unbalanced open":      {format: "(I5"},
		"unbalanced close":     {format: "I5)"},
		"hollerith too short":  {format: "(9HSHORT)"},
		"hollerith zero width": {format: "(0HX)"},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			buf := make([]byte, 16)
			_, err := fmtio.BeginInternalFormattedOutput(buf, tt.format, "t.f90", 1)
			require.Error(t, err)
			assert.ErrorIs(t, err, fmtio.ErrFormatMalformed)
			var fe *fmtio.FatalError
			require.ErrorAs(t, err, &fe)
			assert.Contains(t, fe.Error(), "t.f90:1:")
		})
	}
}

func TestOutputInteger64RejectsFormatLackingInitialParen(t *testing.T) {
	t.Parallel()
	buf := make([]byte, 16)
	cookie, err := fmtio.Begin(buf, "I5", nil, "t.f90", 7)
	require.NoError(t, err)
	_, err = cookie.OutputInteger64(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, fmtio.ErrFormatMalformed)
	assert.Contains(t, err.Error(), "initial")
}

func TestOutputInteger64WidthFieldOverflow(t *testing.T) {
	t.Parallel()
	buf := make([]byte, 16)
	cookie, err := fmtio.Begin(buf, "(I99999999999)", nil, "t.f90", 1)
	require.NoError(t, err)
	_, err = cookie.OutputInteger64(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, fmtio.ErrFormatMalformed)
}

func TestOutputInteger64DescriptorMismatch(t *testing.T) {
	t.Parallel()
	buf := make([]byte, 16)
	cookie, err := fmtio.Begin(buf, "(A5)", nil, "t.f90", 1)
	require.NoError(t, err)
	_, err = cookie.OutputInteger64(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, fmtio.ErrDescriptorMismatch)
	assert.Contains(t, err.Error(), "INTEGER")
}

func TestOutputReal64(t *testing.T) {
	t.Parallel()
	t.Run("E descriptor is a reserved no-op", func(t *testing.T) {
		t.Parallel()
		buf := make([]byte, 16)
		cookie, err := fmtio.Begin(buf, "(E10.2)", nil, "t.f90", 1)
		require.NoError(t, err)
		ok, err := cookie.OutputReal64(3.14)
		require.NoError(t, err)
		assert.False(t, ok)
	})
	t.Run("integer descriptor is a mismatch", func(t *testing.T) {
		t.Parallel()
		buf := make([]byte, 16)
		cookie, err := fmtio.Begin(buf, "(I5)", nil, "t.f90", 1)
		require.NoError(t, err)
		_, err = cookie.OutputReal64(3.14)
		require.Error(t, err)
		assert.ErrorIs(t, err, fmtio.ErrDescriptorMismatch)
		assert.Contains(t, err.Error(), "REAL")
	})
}

func TestEndIoStatementReportsEndOfRecord(t *testing.T) {
	t.Parallel()
	buf := make([]byte, 4)
	cookie, err := fmtio.Begin(buf, "(I5)", nil, "t.f90", 1)
	require.NoError(t, err)
	ok, err := cookie.OutputInteger64(42)
	require.NoError(t, err)
	assert.False(t, ok, "a field wider than the buffer must report short output")
	status, err := cookie.EndIoStatement()
	require.NoError(t, err)
	assert.Equal(t, fmtio.IostatEor, status)
	assert.Equal(t, "   4", string(buf), "only the prefix that fit is written")
}

func TestTLHandlesRelativePositionBackward(t *testing.T) {
	t.Parallel()
	// Regression: TLn must consume the 'L' before reading its digit field,
	// not attempt to parse an integer starting at the unconsumed letter.
	buf := make([]byte, 10)
	for i := range buf {
		buf[i] = 'x'
	}
	cookie, err := fmtio.Begin(buf, "(I3,TL3,I3)", nil, "t.f90", 1)
	require.NoError(t, err)
	_, err = cookie.OutputInteger64(1)
	require.NoError(t, err)
	_, err = cookie.OutputInteger64(9)
	require.NoError(t, err)
	_, err = cookie.EndIoStatement()
	require.NoError(t, err)
	assert.Equal(t, byte('9'), buf[2], "second write overwrote the first field after rewinding 3 columns")
	assert.Equal(t, byte(' '), buf[0])
	assert.Equal(t, byte(' '), buf[1])
}

func TestTRHandlesRelativePositionForward(t *testing.T) {
	t.Parallel()
	buf := make([]byte, 10)
	for i := range buf {
		buf[i] = 'x'
	}
	cookie, err := fmtio.Begin(buf, "(I3,TR2,I3)", nil, "t.f90", 1)
	require.NoError(t, err)
	_, err = cookie.OutputInteger64(1)
	require.NoError(t, err)
	_, err = cookie.OutputInteger64(9)
	require.NoError(t, err)
	_, err = cookie.EndIoStatement()
	require.NoError(t, err)
	assert.Equal(t, byte('1'), buf[2])
	assert.Equal(t, byte(' '), buf[3], "TR2 skips two untouched columns")
	assert.Equal(t, byte(' '), buf[4])
	assert.Equal(t, byte('9'), buf[7])
}

func TestHandleAbsolutePositionOutOfRangeSignalsEOR(t *testing.T) {
	t.Parallel()
	buf := make([]byte, 5)
	cookie, err := fmtio.Begin(buf, "(T9,I2)", nil, "t.f90", 1)
	require.NoError(t, err)
	_, err = cookie.OutputInteger64(1)
	require.NoError(t, err)
	status, err := cookie.EndIoStatement()
	require.NoError(t, err)
	assert.Equal(t, fmtio.IostatEor, status)
}

func TestNewInternalFormattedOutputFillsBufferWithSpaces(t *testing.T) {
	t.Parallel()
	buf := []byte("xxxxxxxxxx")
	_, err := fmtio.BeginInternalFormattedOutput(buf, "(I5)", "t.f90", 1)
	require.NoError(t, err)
	assert.Equal(t, "          ", string(buf))
}

func TestEndIoStatementDrainsTrailingFormat(t *testing.T) {
	t.Parallel()
	// A trailing literal after the last data edit must still flush when
	// EndIoStatement runs the stop-walk.
	buf := make([]byte, 16)
	cookie, err := fmtio.Begin(buf, "(I3,' done')", nil, "t.f90", 1)
	require.NoError(t, err)
	_, err = cookie.OutputInteger64(7)
	require.NoError(t, err)
	_, err = cookie.EndIoStatement()
	require.NoError(t, err)
	assert.Equal(t, "  7 done", string(buf[:8]))
}

func TestSentinelErrorsAreComparable(t *testing.T) {
	t.Parallel()
	assert.True(t, errors.Is(fmtio.ErrFormatMalformed, fmtio.ErrFormatMalformed))
	assert.False(t, errors.Is(fmtio.ErrFormatMalformed, fmtio.ErrDescriptorMismatch))
}
