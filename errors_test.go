package webgrab_test

import (
	"errors"
	"testing"

	"github.com/jgrochowski/webgrab"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := webgrab.Errorf(webgrab.EINVALID, "base URL %q is not absolute", "example.com")

	assert.Equal(t, webgrab.EINVALID, webgrab.ErrorCode(err))
	assert.Equal(t, "base URL \"example.com\" is not absolute", webgrab.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webgrab.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, webgrab.EINTERNAL, webgrab.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webgrab.ErrorMessage(nil))
}
