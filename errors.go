package metagen

import "fmt"

// ErrorKind discriminates the diagnosable (tier-2, SPEC_FULL.md
// section 7) operational errors this package or its driver can hit.
// Recoverable parse errors (tier 1) are swallowed by the Parser and
// never reach this type, except a malformed enum, which the Parser
// records as ErrorKindEnumParseFailed. Fatal invariant violations
// (tier 3) panic instead of being recorded here.
type ErrorKind int

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindOutOfMemory
	ErrorKindFileNotFound
	ErrorKindWriteFailed
	ErrorKindDirectoryCreateFailed
	ErrorKindFileTruncated
	ErrorKindOutputBufferUnderuse
	ErrorKindCapacityExceeded
	ErrorKindEnumParseFailed
	ErrorKindTooManyInputFiles
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindOutOfMemory:
		return "ran out of memory"
	case ErrorKindFileNotFound:
		return "cannot find file"
	case ErrorKindWriteFailed:
		return "could not write to disk"
	case ErrorKindDirectoryCreateFailed:
		return "could not create directory"
	case ErrorKindFileTruncated:
		return "file truncated during read"
	case ErrorKindOutputBufferUnderuse:
		return "output buffer under-use"
	case ErrorKindCapacityExceeded:
		return "declaration capacity exceeded"
	case ErrorKindEnumParseFailed:
		return "failed to parse enum"
	case ErrorKindTooManyInputFiles:
		return "too many input files"
	default:
		return "unknown error"
	}
}

// RegistryError is one entry pushed into an ErrorRegistry: a kind and
// a free-form tag identifying what triggered it (a file path, a
// declaration name, ...).
type RegistryError struct {
	Kind ErrorKind
	Tag  string
}

func (e RegistryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Tag)
}

// ErrorRegistry collects diagnosable operational errors so they can
// be drained and summarized at shutdown, instead of aborting the
// whole run the moment one occurs. Each Process call creates its own
// and folds it into the single error it returns -- never global
// mutable state -- so unrelated invocations in the same process never
// share diagnostics.
type ErrorRegistry struct {
	entries []RegistryError
}

// NewErrorRegistry returns an empty registry.
func NewErrorRegistry() *ErrorRegistry {
	return &ErrorRegistry{}
}

// Push records one diagnosable error. Execution is expected to
// continue where possible after this call.
func (r *ErrorRegistry) Push(kind ErrorKind, tag string) {
	r.entries = append(r.entries, RegistryError{Kind: kind, Tag: tag})
}

// Entries returns every error recorded so far, oldest first.
func (r *ErrorRegistry) Entries() []RegistryError {
	return r.entries
}

// Empty reports whether nothing has been recorded.
func (r *ErrorRegistry) Empty() bool {
	return len(r.entries) == 0
}
