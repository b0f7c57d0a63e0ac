package domain

import (
	"errors"
	"fmt"
)

// FailureKind tags why a generation request did not succeed
type FailureKind int

const (
	KindInternal FailureKind = iota
	KindMethodNotAllowed
	KindValidation
	KindConfig
	KindUpstream
	KindShape
)

var kindNames = map[FailureKind]string{
	KindInternal:         "internal",
	KindMethodNotAllowed: "method_not_allowed",
	KindValidation:       "validation",
	KindConfig:           "config",
	KindUpstream:         "upstream",
	KindShape:            "shape",
}

func (k FailureKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// GenerationError is the error type returned by the generation pipeline
type GenerationError struct {
	Kind    FailureKind
	Status  int // upstream HTTP status, zero when no response was received
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// MethodNotAllowed returns an error for a request with a method other than POST
func MethodNotAllowed(method string) *GenerationError {
	return &GenerationError{Kind: KindMethodNotAllowed, Message: fmt.Sprintf("method %s not allowed", method)}
}

// MissingPrompt returns an error for a request without a usable prompt
func MissingPrompt(cause error) *GenerationError {
	return &GenerationError{Kind: KindValidation, Message: "prompt is required", Cause: cause}
}

// ConfigFault returns an error for a missing upstream credential
func ConfigFault() *GenerationError {
	return &GenerationError{Kind: KindConfig, Message: "API key is not configured"}
}

// UpstreamFailure returns an error for a non-2xx upstream response
func UpstreamFailure(status int, cause error) *GenerationError {
	return &GenerationError{
		Kind:    KindUpstream,
		Status:  status,
		Message: fmt.Sprintf("upstream failed with status %d", status),
		Cause:   cause,
	}
}

// InvalidShape returns an error for a 2xx upstream response without an image
func InvalidShape(status int, cause error) *GenerationError {
	return &GenerationError{
		Kind:    KindShape,
		Status:  status,
		Message: "invalid response structure from upstream",
		Cause:   cause,
	}
}

// TransportFault returns an error for a request that never got a response
func TransportFault(cause error) *GenerationError {
	return &GenerationError{Kind: KindInternal, Message: "upstream request failed", Cause: cause}
}

// KindOf reports the failure kind carried by err. Errors outside the
// pipeline are KindInternal.
func KindOf(err error) FailureKind {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindInternal
}

// UpstreamStatusOf reports the upstream HTTP status carried by err, or zero.
func UpstreamStatusOf(err error) int {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Status
	}
	return 0
}
