package service

import (
	"errors"
	"fmt"

	"stockroom/internal/domain"
)

var (
	ErrNotFound         = errors.New("product not found")
	ErrMissingParameter = errors.New("missing parameter")
	ErrActionFailed     = errors.New("action failed")
)

// ValidationError carries the field violations that rejected a write
type ValidationError struct {
	Violations []domain.Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Violations[0].Field, e.Violations[0].Message)
}

// Outcome is the externally visible result class of an operation
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeValidationFailed
	OutcomeMissingParameter
	OutcomeNotFound
	OutcomeActionFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeValidationFailed:
		return "validation_failed"
	case OutcomeMissingParameter:
		return "missing_parameter"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "action_failed"
	}
}

// OutcomeOf classifies an error returned by the product services.
// Anything unrecognised is treated as a failed action.
func OutcomeOf(err error) Outcome {
	var validationErr *ValidationError
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &validationErr):
		return OutcomeValidationFailed
	case errors.Is(err, ErrMissingParameter):
		return OutcomeMissingParameter
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeActionFailed
	}
}

func actionFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrActionFailed, err)
}
