package pogen

import (
	"errors"
	"fmt"

	"github.com/syssam/pogen/compiler/gen"
	"github.com/syssam/pogen/compiler/load"
)

// Standard sentinel errors, re-exported from the packages that raise them.
var (
	// ErrMetadata is returned when the metadata source fails.
	ErrMetadata = load.ErrMetadata

	// ErrInvalidSchema is returned when a table cannot be rendered as valid Go.
	ErrInvalidSchema = gen.ErrInvalidSchema

	// ErrInvalidConfig is returned for an invalid pack or output folder.
	ErrInvalidConfig = gen.ErrMissingConfig

	// ErrGeneration is returned when writing a source file fails.
	ErrGeneration = gen.ErrGenerationFailed

	// ErrUsed is returned when a Generator is run a second time. Its source
	// was closed by the first run.
	ErrUsed = errors.New("pogen: generator already used")
)

// BuildError represents a failed generation run.
type BuildError struct {
	Pack   string
	Output string
	Phase  string // config, load, generate
	Err    error
}

// Error returns the error string.
func (e *BuildError) Error() string {
	return fmt.Sprintf("pogen: build %s into %s: %s: %v", e.Pack, e.Output, e.Phase, e.Err)
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error {
	return e.Err
}

// NewBuildError returns a new BuildError.
func NewBuildError(pack, output, phase string, err error) *BuildError {
	return &BuildError{Pack: pack, Output: output, Phase: phase, Err: err}
}

// IsBuildError returns true if the error is a BuildError.
func IsBuildError(err error) bool {
	if err == nil {
		return false
	}
	var e *BuildError
	return errors.As(err, &e)
}
