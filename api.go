package metagen

import (
	"fmt"
	"strings"
)

// Process runs the full pipeline described by SPEC_FULL.md section 6
// over inputFiles: parse every file into a shared Model, then generate
// the header and source texts from it. arena backs every allocation
// Process itself needs (the two OutputBuffers); it does not take
// ownership of inputFiles' backing arrays.
//
// Diagnosable (tier 2) errors -- too many input files, a capacity
// overrun, a malformed enum -- do not abort the run: Process keeps
// going and folds every recorded entry into the returned error, which
// is nil only if nothing was recorded. A tier 3 invariant violation
// (an Arena or OutputBuffer exhausted) is not reported this way at
// all; it panics, per SPEC_FULL.md section 7.
func Process(inputFiles [][]byte, arena *Arena, cfg *Config) (headerBytes, sourceBytes []byte, err error) {
	registry := NewErrorRegistry()

	if len(inputFiles) > MaxInputFiles {
		registry.Push(ErrorKindTooManyInputFiles, fmt.Sprintf("%d files, max %d", len(inputFiles), MaxInputFiles))
		inputFiles = inputFiles[:MaxInputFiles]
	}

	model := NewModel(registry)
	ParseFiles(inputFiles, model)

	gen := NewGenerator(model, arena)
	headerText := gen.GenerateHeader()
	sourceText := gen.GenerateSource()

	headerBuf := NewOutputBuffer(arena, cfg.GetInt("arena.permanent_bytes")/2)
	sourceBuf := NewOutputBuffer(arena, cfg.GetInt("arena.permanent_bytes")/2)
	headerBuf.WriteString(headerText)
	sourceBuf.WriteString(sourceText)

	return headerBuf.Bytes(), sourceBuf.Bytes(), registryError(registry)
}

// registryError folds every recorded entry into a single error, or
// returns nil if the registry is empty.
func registryError(registry *ErrorRegistry) error {
	if registry.Empty() {
		return nil
	}
	var msgs []string
	for _, e := range registry.Entries() {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("metagen: %d diagnosable error(s): %s", len(msgs), strings.Join(msgs, "; "))
}
