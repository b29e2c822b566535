package storage

import (
	"fmt"

	"informant/internal/storage/interfaces"

	"github.com/klauspost/compress/zstd"
)

// maxSnapshotSize bounds a decompressed day snapshot. Decades of daily records fit in a
// few megabytes, so anything near this is a corrupt or foreign file.
const maxSnapshotSize = 256 << 20

// SnapshotCompressor zstd-compresses the JSON day snapshot written by FileManager.
// Snapshots are written rarely and read once at startup, so it favours ratio over speed.
type SnapshotCompressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (c *SnapshotCompressor) Compress(snapshot []byte) ([]byte, error) {
	return c.encoder.EncodeAll(snapshot, nil), nil
}

func (c *SnapshotCompressor) Decompress(data []byte) ([]byte, error) {
	snapshot, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing snapshot: %w", err)
	}
	return snapshot, nil
}

func (c *SnapshotCompressor) Close() {
	_ = c.encoder.Close()
	c.decoder.Close()
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxSnapshotSize),
	)
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("creating snapshot decoder: %w", err)
	}
	return &SnapshotCompressor{encoder: encoder, decoder: decoder}, nil
}
