package namespace

import (
	"errors"
	"fmt"
)

// ErrUnsupportedChain is returned for a chain identifier with no known root currency.
var ErrUnsupportedChain = errors.New("unsupported chain")

// Stage names a step of discovery whose failure aborts the whole run.
type Stage string

const (
	StageCatalog Stage = "catalog"
)

// StageError is a failure that aborts discovery as a whole.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
