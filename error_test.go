package kbscrape_test

import (
	"errors"
	"testing"

	"github.com/aline-ai/kbscrape"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := kbscrape.Errorf(kbscrape.ENOTFOUND, "feed %q not found", "test")

	assert.Equal(t, kbscrape.ENOTFOUND, kbscrape.ErrorCode(err))
	assert.Equal(t, "feed \"test\" not found", kbscrape.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, kbscrape.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, kbscrape.EINTERNAL, kbscrape.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, kbscrape.ErrorMessage(nil))
}
