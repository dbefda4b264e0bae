package atlascrape_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/connexin/atlascrape"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	err := atlascrape.Errorf(atlascrape.ENOTFOUND, "artifact %q not found", "merged")
	assert.Equal(t, atlascrape.ENOTFOUND, atlascrape.ErrorCode(err))
	assert.Equal(t, `artifact "merged" not found`, atlascrape.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, atlascrape.ErrorCode(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	inner := atlascrape.Errorf(atlascrape.EUNAUTHORIZED, "authentication failed")
	wrapped := fmt.Errorf("scrape confluence: %w", inner)
	assert.Equal(t, atlascrape.EUNAUTHORIZED, atlascrape.ErrorCode(wrapped))
	assert.Equal(t, "authentication failed", atlascrape.ErrorMessage(wrapped))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	assert.Equal(t, atlascrape.EINTERNAL, atlascrape.ErrorCode(err))
	assert.Equal(t, "Internal error.", atlascrape.ErrorMessage(err))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, atlascrape.ErrorMessage(nil))
}
