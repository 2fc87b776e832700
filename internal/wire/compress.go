package wire

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
)

// Compress lz4-frames a snapshot payload before it goes over HTTP.
func Compress(data []byte) ([]byte, error) {
	var compressed bytes.Buffer
	writer := lz4.NewWriter(&compressed)

	if _, err := writer.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return compressed.Bytes(), nil
}

// Decompress reverses Compress on the client side.
func Decompress(data []byte) ([]byte, error) {
	reader := lz4.NewReader(bytes.NewReader(data))
	return io.ReadAll(reader)
}
