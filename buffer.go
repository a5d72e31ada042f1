package metagen

import "fmt"

// OutputBuffer is an append-only textual sink with bounded capacity,
// carved out of an Arena's permanent region. Write panics (a tier-3
// fatal error) rather than growing, because the C original treats
// overrunning the backing buffer as an unrecoverable invariant
// violation, not a condition to paper over by reallocating.
type OutputBuffer struct {
	buffer []byte
	index  int
}

// NewOutputBuffer carves a `size`-byte slab out of arena's permanent
// region and wraps it as an OutputBuffer.
func NewOutputBuffer(arena *Arena, size int) *OutputBuffer {
	return &OutputBuffer{buffer: arena.PushPermanent(size, 1)}
}

// Write formats args against format (see formatString) and appends
// the result, advancing the cursor. It panics if doing so would
// exceed the buffer's capacity.
func (b *OutputBuffer) Write(format string, args ...interface{}) {
	b.WriteString(formatString(format, args...))
}

// WriteString appends s verbatim, bypassing the formatter. Process
// uses it to copy the generator's already-rendered header and source
// text in, where running them through formatString would serve no
// purpose.
func (b *OutputBuffer) WriteString(s string) {
	end := b.index + len(s)
	if end > len(b.buffer) {
		panic(fmt.Sprintf("metagen: output buffer overflow: need %d bytes at offset %d, capacity is %d", len(s), b.index, len(b.buffer)))
	}
	copy(b.buffer[b.index:end], s)
	b.index = end
}

// Bytes returns the bytes written so far. The returned slice aliases
// the buffer's backing array and must not be retained past the
// Arena's lifetime.
func (b *OutputBuffer) Bytes() []byte {
	return b.buffer[:b.index]
}

// Len reports how many bytes have been written.
func (b *OutputBuffer) Len() int {
	return b.index
}
