package embed

import (
	"fmt"
	"strings"
)

// DefaultChunkSize is the number of byte literals emitted per output line.
const DefaultChunkSize = 128

// Chunks splits data into consecutive windows of size bytes. The last window
// may be shorter. Empty input yields no chunks. The windows share data's
// backing array. Chunks panics if size is not positive.
func Chunks(data []byte, size int) [][]byte {
	if size <= 0 {
		panic(fmt.Sprintf("embed: chunk size must be positive, got %d", size))
	}
	chunks := make([][]byte, 0, (len(data)+size-1)/size)
	for start := 0; start < len(data); start += size {
		end := min(start+size, len(data))
		chunks = append(chunks, data[start:end])
	}
	return chunks
}

const hexDigits = "0123456789abcdef"

// FormatChunk renders every byte as a lowercase "0x%02x," literal, with no
// separator between literals and no line break.
func FormatChunk(chunk []byte) string {
	var sb strings.Builder
	sb.Grow(len(chunk) * 5)
	for _, b := range chunk {
		sb.WriteString("0x")
		sb.WriteByte(hexDigits[b>>4])
		sb.WriteByte(hexDigits[b&0x0f])
		sb.WriteByte(',')
	}
	return sb.String()
}
