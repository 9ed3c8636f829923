package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors for the pipeline failure taxonomy.
// These can be checked with errors.Is().
var (
	// ErrInvalidInput indicates the caller supplied a missing or empty required field.
	ErrInvalidInput = errors.New("pipeline: invalid input")

	// ErrOffTopic indicates the query was rejected by the cooking-domain classifier.
	ErrOffTopic = errors.New("pipeline: query is not cooking-related")

	// ErrProviderFailure indicates the generation provider call failed
	// (transport error, timeout or provider-side error). Never retried here.
	ErrProviderFailure = errors.New("pipeline: provider request failed")

	// ErrMalformedResponse indicates the provider output contained no parseable JSON.
	ErrMalformedResponse = errors.New("pipeline: malformed provider response")

	// ErrValidationFailure indicates the provider output was valid JSON but did
	// not match the expected schema.
	ErrValidationFailure = errors.New("pipeline: response failed schema validation")
)

// Error wraps a pipeline failure with its kind and a diagnostic detail.
// Kind is always one of the sentinel errors above.
type Error struct {
	Kind   error
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	}
	return e.Kind.Error()
}

// Is reports whether target matches this error's kind.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidInput(detail string) error {
	return &Error{Kind: ErrInvalidInput, Detail: detail}
}

func providerFailure(err error) error {
	return &Error{Kind: ErrProviderFailure, Detail: err.Error(), Err: err}
}

func malformedResponse(detail string, err error) error {
	return &Error{Kind: ErrMalformedResponse, Detail: detail, Err: err}
}

func validationFailure(detail string) error {
	return &Error{Kind: ErrValidationFailure, Detail: detail}
}
