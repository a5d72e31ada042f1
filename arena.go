package metagen

import "fmt"

// defaultAlignment is used by Push* calls that don't specify one explicitly.
const defaultAlignment = 4

// Arena is a bump allocator split into three independently sized
// regions: file (input text), permanent (the model and the two
// output buffers) and temp (parser scratch, reclaimed through
// scopes). Nothing here is safety-relevant the way a C arena is --
// Go's GC already keeps backing arrays alive for as long as any
// slice references them -- but the three-region shape and the
// scoped-scratch contract are part of this package's observable
// behavior, so they're modeled explicitly rather than replaced with
// plain `make([]byte, n)` calls scattered through the codebase.
type Arena struct {
	file      []byte
	fileLen   int
	permanent []byte
	permLen   int
	temp      []byte
	tempLen   int

	scopeDepth int
}

// NewArena allocates the three backing regions up front. Exhaustion
// of any one of them later is a fatal error (see Push*/ScopeAlloc).
func NewArena(fileSize, permanentSize, tempSize int) *Arena {
	return &Arena{
		file:      make([]byte, fileSize),
		permanent: make([]byte, permanentSize),
		temp:      make([]byte, tempSize),
	}
}

// Reset rewinds all three cursors to zero so the backing storage can
// be reused by a subsequent, independent invocation without
// re-allocating it. It must only be called when nothing still holds
// a slice into this arena.
func (a *Arena) Reset() {
	a.fileLen = 0
	a.permLen = 0
	a.tempLen = 0
	a.scopeDepth = 0
}

func align(n, alignment int) int {
	if alignment <= 0 {
		alignment = defaultAlignment
	}
	if rem := n % alignment; rem != 0 {
		n += alignment - rem
	}
	return n
}

// PushFile carves `size` zeroed bytes out of the file region.
func (a *Arena) PushFile(size int) []byte {
	return pushFrom(&a.file, &a.fileLen, size, defaultAlignment, "file")
}

// PushPermanent carves `size` zeroed bytes out of the permanent
// region, honoring `alignment` (0 means defaultAlignment).
func (a *Arena) PushPermanent(size, alignment int) []byte {
	return pushFrom(&a.permanent, &a.permLen, size, alignment, "permanent")
}

func pushFrom(region *[]byte, cursor *int, size, alignment int, name string) []byte {
	start := align(*cursor, alignment)
	end := start + size
	if end > len(*region) {
		panic(fmt.Sprintf("metagen: %s arena exhausted: need %d bytes at offset %d, capacity is %d", name, size, start, len(*region)))
	}
	*cursor = end
	slab := (*region)[start:end]
	for i := range slab {
		slab[i] = 0
	}
	return slab
}

// ArenaScope is a checkpoint into the temp region plus a local bump
// cursor over a fixed-size slab carved out of it at scope_begin time.
// Scopes must be released in strict LIFO order via End.
type ArenaScope struct {
	arena     *Arena
	checkpoint int
	slab      []byte
	cursor    int
	depth     int
	ended     bool
}

// ScopeBegin carves a `size`-byte slab out of the temp region and
// returns a handle scoped to it. Callers should `defer scope.End()`
// immediately to guarantee release on every exit path.
func (a *Arena) ScopeBegin(size int) *ArenaScope {
	checkpoint := a.tempLen
	start := align(checkpoint, defaultAlignment)
	end := start + size
	if end > len(a.temp) {
		panic(fmt.Sprintf("metagen: temp arena exhausted: need %d bytes at offset %d, capacity is %d", size, start, len(a.temp)))
	}
	a.tempLen = end
	a.scopeDepth++
	return &ArenaScope{
		arena:      a,
		checkpoint: checkpoint,
		slab:       a.temp[start:end],
		depth:      a.scopeDepth,
	}
}

// ScopeAlloc carves `size` zeroed bytes out of the scope's slab.
func (s *ArenaScope) ScopeAlloc(size, alignment int) []byte {
	if s.ended {
		panic("metagen: ScopeAlloc called on an ended ArenaScope")
	}
	start := align(s.cursor, alignment)
	end := start + size
	if end > len(s.slab) {
		panic(fmt.Sprintf("metagen: scope arena exhausted: need %d bytes at offset %d, capacity is %d", size, start, len(s.slab)))
	}
	s.cursor = end
	slab := s.slab[start:end]
	for i := range slab {
		slab[i] = 0
	}
	return slab
}

// End returns the temp cursor to the checkpoint recorded at
// ScopeBegin and invalidates the handle. Scopes must end in strict
// LIFO order; ending anything but the innermost live scope is a
// fatal programming error.
func (s *ArenaScope) End() {
	if s.ended {
		return
	}
	if s.depth != s.arena.scopeDepth {
		panic(fmt.Sprintf("metagen: scope ended out of LIFO order: expected depth %d, got %d", s.arena.scopeDepth, s.depth))
	}
	s.arena.tempLen = s.checkpoint
	s.arena.scopeDepth--
	s.ended = true
	s.slab = nil
}
