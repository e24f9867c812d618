package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"english-hub/gateway"
)

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(ErrImageTooLarge))
	assert.True(t, IsValidation(fmt.Errorf("select: %w", ErrNotAnImage)))
	assert.False(t, IsValidation(gateway.ErrGateway))
	assert.False(t, IsValidation(errors.New("boom")))
	assert.False(t, IsValidation(nil))
}

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrImageTooLarge, "File size must be less than 5MB"},
		{fmt.Errorf("wrapped: %w", ErrTitleRequired), "Please enter a post title"},
		{ErrCommentTooLong, "Comments are limited to 200 characters"},
		{errors.New("disk on fire"), "Upload failed"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, UserMessage(tc.err))
	}

	gwErr := fmt.Errorf("%w: insert activity: timeout", gateway.ErrGateway)
	assert.Contains(t, UserMessage(gwErr), "Upload failed: ")
}
