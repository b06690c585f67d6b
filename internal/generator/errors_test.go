package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputError(t *testing.T) {
	err := &InputError{Field: "name", Message: "invalid name \"1x\""}
	assert.Equal(t, `invalid name "1x"`, err.Error())
	assert.ErrorIs(t, err, ErrInput)

	err.Suggestion = "start with a letter"
	assert.Equal(t, `invalid name "1x". Suggestion: start with a letter`, err.Error())

	cause := errors.New("boom")
	wrapped := &InputError{Message: "bad", Err: cause}
	assert.ErrorIs(t, wrapped, cause)
	assert.ErrorIs(t, wrapped, ErrInput)
}
