// ABOUTME: Tests for pipeline error classification.
// ABOUTME: Covers wrapping, kind lookup through chains, and message formatting.
package etlerr

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(KindIO, "read", nil))
	assert.NoError(t, WrapPath(KindIO, "read", "x.csv", nil))
}

func TestKindOfThroughChain(t *testing.T) {
	base := WrapPath(KindIO, "create raw file", "data/Nutrition.csv", io.ErrUnexpectedEOF)
	wrapped := fmt.Errorf("extract: %w", base)

	assert.Equal(t, KindIO, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindIO))
	assert.False(t, Is(wrapped, KindDatabase))
	assert.ErrorIs(t, wrapped, io.ErrUnexpectedEOF)
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.False(t, Is(nil, KindUnknown))
}

func TestStatus(t *testing.T) {
	err := Status("https://example.com/data.csv", 404)

	assert.True(t, Is(err, KindHTTPStatus))
	assert.Equal(t, 404, StatusCode(err))
	assert.Contains(t, err.Error(), "status code 404")
	assert.Contains(t, err.Error(), "https://example.com/data.csv")
	assert.Equal(t, 0, StatusCode(New(KindCSV, "read header", "bad")))
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindIO, "io"},
		{KindNetwork, "network"},
		{KindHTTPStatus, "http status"},
		{KindCSV, "csv"},
		{KindParse, "parse"},
		{KindDatabase, "database"},
		{Kind(42), "kind(42)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := New(KindParse, "parse EGGSFREQ", "invalid integer %q", "abc")
	assert.Equal(t, `parse EGGSFREQ: invalid integer "abc"`, err.Error())
}
