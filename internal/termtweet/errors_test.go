package termtweet

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepErrorFormatting(t *testing.T) {
	cause := errors.New("permission denied")

	t.Run("hidden cause", func(t *testing.T) {
		err := &StepError{
			Step:       StepAuthenticate,
			Message:    "Authentication failed",
			Suggestion: "Check your credentials",
			Cause:      cause,
		}
		out := err.Error()
		assert.Contains(t, out, "✗ Authentication failed")
		assert.Contains(t, out, "Check your credentials")
		assert.NotContains(t, out, "permission denied")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("shown cause", func(t *testing.T) {
		err := &StepError{Step: StepSave, Message: "Error saving credentials", Cause: cause, ShowCause: true}
		assert.Contains(t, err.Error(), "permission denied")
	})
}

func TestIsStep(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", &StepError{Step: StepPost, Message: "post failed"})

	assert.True(t, IsStep(wrapped, StepPost))
	assert.False(t, IsStep(wrapped, StepUpload))
	assert.True(t, IsStep(ValidationError{Field: "text", Reason: "too long"}, StepValidate))
	assert.True(t, IsStep(MissingCredentialsError{Variables: []string{"X"}}, StepValidate))
	assert.False(t, IsStep(errors.New("plain"), StepValidate))
	assert.False(t, IsStep(nil, StepValidate))
}

func TestMissingCredentialsError(t *testing.T) {
	assert.Equal(t, "credentials not configured", MissingCredentialsError{}.Error())
	assert.Equal(t,
		"all fields are required (missing TWITTER_API_KEY, TWITTER_BEARER_TOKEN)",
		MissingCredentialsError{Variables: []string{"TWITTER_API_KEY", "TWITTER_BEARER_TOKEN"}}.Error())
}
