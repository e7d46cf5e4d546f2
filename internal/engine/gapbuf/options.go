package gapbuf

// DefaultChunkSize is the growth granularity of the backing slice.
const DefaultChunkSize = 4096

// Option configures a GapBuffer.
type Option func(*GapBuffer)

// WithChunkSize sets the growth granularity. Values below 1 are ignored.
func WithChunkSize(n int) Option {
	return func(g *GapBuffer) {
		if n > 0 {
			g.chunkSize = n
		}
	}
}
