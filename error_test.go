package h2wp_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/h2wp"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := h2wp.Errorf(h2wp.ENOTFOUND, "job %q not found", "job_1")

	assert.Equal(t, h2wp.ENOTFOUND, h2wp.ErrorCode(err))
	assert.Equal(t, "job \"job_1\" not found", h2wp.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("load: %w", h2wp.Errorf(h2wp.EINVALID, "bad state"))

	assert.Equal(t, h2wp.EINVALID, h2wp.ErrorCode(err))
	assert.Equal(t, "bad state", h2wp.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk full")

	assert.Equal(t, h2wp.EINTERNAL, h2wp.ErrorCode(err))
	assert.Equal(t, "disk full", h2wp.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, h2wp.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, h2wp.ErrorMessage(nil))
}
