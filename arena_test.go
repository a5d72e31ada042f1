package metagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArena_PushPermanent(t *testing.T) {
	a := NewArena(16, 64, 64)

	first := a.PushPermanent(10, 1)
	assert.Len(t, first, 10)

	second := a.PushPermanent(10, 1)
	assert.Len(t, second, 10)

	first[0] = 'x'
	assert.NotEqual(t, byte('x'), second[0], "independent pushes must not alias")
}

func TestArena_PushPermanent_Alignment(t *testing.T) {
	a := NewArena(0, 64, 0)

	a.PushPermanent(1, 8)
	second := a.PushPermanent(1, 8)

	assert.Len(t, second, 1, "sanity: non-empty slice returned")
	assert.Equal(t, 8, align(1, 8))
}

func TestArena_PushPermanent_ExhaustionPanics(t *testing.T) {
	a := NewArena(0, 4, 0)
	a.PushPermanent(4, 1)
	assert.Panics(t, func() {
		a.PushPermanent(1, 1)
	})
}

func TestArena_ScopeLIFO(t *testing.T) {
	a := NewArena(0, 0, 64)

	outer := a.ScopeBegin(16)
	inner := a.ScopeBegin(16)

	assert.Panics(t, func() {
		outer.End()
	}, "ending out of LIFO order must panic")

	inner.End()
	assert.NotPanics(t, func() {
		outer.End()
	})
}

func TestArena_ScopeAllocAfterEndPanics(t *testing.T) {
	a := NewArena(0, 0, 64)
	s := a.ScopeBegin(16)
	s.End()
	assert.Panics(t, func() {
		s.ScopeAlloc(1, 1)
	})
}

func TestArena_ScopeReleasesTempSpace(t *testing.T) {
	a := NewArena(0, 0, 16)

	s1 := a.ScopeBegin(16)
	s1.End()

	s2 := a.ScopeBegin(16)
	assert.NotNil(t, s2)
	s2.End()
}

func TestArena_Reset(t *testing.T) {
	a := NewArena(8, 8, 8)
	a.PushFile(8)
	a.PushPermanent(8, 1)
	s := a.ScopeBegin(4)
	s.ScopeAlloc(4, 1)

	a.Reset()

	assert.NotPanics(t, func() {
		a.PushFile(8)
		a.PushPermanent(8, 1)
	})
}
