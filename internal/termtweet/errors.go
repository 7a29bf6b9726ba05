package termtweet

import (
	"errors"
	"fmt"
	"strings"
)

// Step names the workflow stage an error came from.
type Step string

const (
	StepValidate     Step = "validate"
	StepLoad         Step = "load credentials"
	StepAuthenticate Step = "authenticate"
	StepUpload       Step = "upload media"
	StepPost         Step = "create post"
	StepSave         Step = "save credentials"
)

// MissingCredentialsError is returned when required credentials are empty.
type MissingCredentialsError struct {
	Variables []string
}

func (e MissingCredentialsError) Error() string {
	if len(e.Variables) == 0 {
		return "credentials not configured"
	}
	return fmt.Sprintf("all fields are required (missing %s)", strings.Join(e.Variables, ", "))
}

// ValidationError captures a rejected request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// StepError is a failure of one workflow step, rendered as
//
//	✗ <what failed>
//
//	  <cause, when it helps>
//
//	  <how to fix it>
type StepError struct {
	Step       Step
	Message    string
	Suggestion string
	Cause      error
	// ShowCause prints Cause as part of the message. Remote failures keep
	// the cause for errors.Is/As without printing it.
	ShowCause bool
}

func (e *StepError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✗ %s\n", e.Message)
	if e.ShowCause && e.Cause != nil {
		fmt.Fprintf(&b, "\n  %s\n", e.Cause.Error())
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  %s\n", e.Suggestion)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *StepError) Unwrap() error {
	return e.Cause
}

// IsStep reports whether err is a StepError raised at step.
func IsStep(err error, step Step) bool {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step == step
	}
	var ve ValidationError
	if errors.As(err, &ve) {
		return step == StepValidate
	}
	var me MissingCredentialsError
	if errors.As(err, &me) {
		return step == StepValidate
	}
	return false
}
