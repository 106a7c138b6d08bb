package frame

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFrame_RoundTrip(t *testing.T) {
	payload := []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize"}`)

	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, payload))

	r := NewReader(&buf)
	f, err := r.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, payload, f.Payload)
}

func TestReadFrame_MultipleFramesPreserveOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte(`{"n":1}`)))
	require.NoError(t, WriteFrame(&buf, []byte(`{"n":2}`)))
	require.NoError(t, WriteFrame(&buf, []byte(`{"n":3}`)))

	r := NewReader(&buf)
	for _, want := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
		f, err := r.ReadFrame()
		require.NoError(t, err)
		assert.Equal(t, want, string(f.Payload))
	}
}

func TestReadFrame_CleanEOF(t *testing.T) {
	r := NewReader(&bytes.Buffer{})
	_, err := r.ReadFrame()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadFrame_TruncatedBody(t *testing.T) {
	raw := "Content-Length: 10\r\n\r\nshort"
	r := NewReader(bytes.NewBufferString(raw))
	_, err := r.ReadFrame()
	require.Error(t, err)
	var fe *FramingError
	assert.ErrorAs(t, err, &fe)
}

func TestReadFrame_MissingContentLength(t *testing.T) {
	raw := "Content-Type: application/json\r\n\r\n"
	r := NewReader(bytes.NewBufferString(raw))
	_, err := r.ReadFrame()
	require.Error(t, err)
	var fe *FramingError
	assert.ErrorAs(t, err, &fe)
}

func TestReadFrame_TruncatedContentLengthTypo(t *testing.T) {
	body := `{"ok":true}`
	raw := "ontent-length: 11\r\n\r\n" + body
	r := NewReader(bytes.NewBufferString(raw))
	f, err := r.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, body, string(f.Payload))
}

func TestReadFrame_HeaderCaseInsensitive(t *testing.T) {
	body := `{"ok":true}`
	raw := "CONTENT-LENGTH: 11\r\n\r\n" + body
	r := NewReader(bytes.NewBufferString(raw))
	f, err := r.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, body, string(f.Payload))
}

func TestReadFrame_IgnoresUnknownHeaders(t *testing.T) {
	body := `{"ok":true}`
	raw := "X-Custom: whatever\r\nContent-Length: 11\r\n\r\n" + body
	r := NewReader(bytes.NewBufferString(raw))
	f, err := r.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, body, string(f.Payload))
}
