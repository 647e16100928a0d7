package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	hdr.Add("X-Custom", "a")
	hdr.Add("X-Custom", "b")
	body := []byte(`{"items":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, []string{"a", "b"}, gotHdr.Values("X-Custom"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	_, _, _, ok := decodePayload(nil)
	assert.False(t, ok)

	_, _, _, ok = decodePayload([]byte{1, 2, 3})
	assert.False(t, ok)

	// Header length pointing past the buffer.
	payload, err := encodePayload(200, http.Header{}, nil)
	require.NoError(t, err)
	payload[7] = 0xFF
	_, _, _, ok = decodePayload(payload)
	assert.False(t, ok)
}

func TestEncodePayloadEmptyBody(t *testing.T) {
	payload, err := encodePayload(http.StatusOK, http.Header{}, nil)
	require.NoError(t, err)

	status, hdr, body, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.NotNil(t, hdr)
	assert.Empty(t, body)
}
