package metagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorRegistry_PushAndDrain(t *testing.T) {
	r := NewErrorRegistry()
	assert.True(t, r.Empty())

	r.Push(ErrorKindFileNotFound, "missing.h")
	r.Push(ErrorKindCapacityExceeded, "struct:Foo")

	assert.False(t, r.Empty())
	entries := r.Entries()
	assert.Len(t, entries, 2)
	assert.Equal(t, "missing.h", entries[0].Tag)
	assert.Equal(t, ErrorKindCapacityExceeded, entries[1].Kind)
}

func TestRegistryError_Message(t *testing.T) {
	e := RegistryError{Kind: ErrorKindFileNotFound, Tag: "foo.c"}
	assert.Equal(t, "cannot find file: foo.c", e.Error())
}

func TestErrorKind_UnknownStringsFallThrough(t *testing.T) {
	assert.Equal(t, "unknown error", ErrorKind(999).String())
}
