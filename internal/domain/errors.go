package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is matched by every *InvalidTransitionError
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidWorkout    = errors.New("invalid workout")
	ErrNoPhaseDuration   = errors.New("phase has no duration")
)

// InvalidTransitionError is returned when an operation is called from a
// phase that does not accept it
type InvalidTransitionError struct {
	Phase     Phase
	Operation Operation
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: cannot %s while %s", e.Operation, e.Phase)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
