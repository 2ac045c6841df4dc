package market

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned before any collaborator is invoked.
var ErrInvalidInput = errors.New("missing 'product_description' in request body")

// Stage names the three collaborator calls that get attributable failures.
// Everything else in the pipeline surfaces as a generic internal error.
type Stage string

const (
	StageSimilarity Stage = "finding top personas"
	StageDecisions  Stage = "analyzing purchase decisions"
	StageClassify   Stage = "classifying yes personas"
)

// StageError wraps a failure from one of the isolated stages so the HTTP
// layer can report which stage failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("error %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
