package wire

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestCompressRoundTrip(t *testing.T) {
	payload := []byte(`{"messages":[{"roomId":"r1","message":"{\"shape\":{}}","userId":"u1"}]}`)

	compressed, err := Compress(payload)
	assert.Equal(t, nil, err)

	back, err := Decompress(compressed)
	assert.Equal(t, nil, err)
	assert.Equal(t, payload, back)
}

func TestDecodeEnvelope(t *testing.T) {
	ev, err := Decode([]byte(`{"type":"chat","roomId":"r1","message":"{}"}`))
	assert.Equal(t, nil, err)
	assert.Equal(t, EventChat, ev.Type)
	assert.Equal(t, "r1", ev.RoomID)

	_, err = Decode([]byte(`garbage`))
	assert.NotEqual(t, err, nil)
}
