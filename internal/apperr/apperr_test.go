package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindInternal:     http.StatusInternalServerError,
		KindValidation:   http.StatusBadRequest,
		KindInvalidState: http.StatusBadRequest,
		KindNotFound:     http.StatusNotFound,
		KindUnauthorized: http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindConflict:     http.StatusConflict,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.HTTPStatus())
	}
}

func TestFrom(t *testing.T) {
	t.Run("passes domain errors through", func(t *testing.T) {
		orig := New(KindNotFound, CodeUserNotFound)
		assert.Same(t, orig, From(orig))
	})

	t.Run("unwraps nested domain errors", func(t *testing.T) {
		orig := New(KindConflict, CodeEmailInUse)
		wrapped := fmt.Errorf("creating user: %w", orig)
		assert.Same(t, orig, From(wrapped))
	})

	t.Run("wraps foreign errors as internal", func(t *testing.T) {
		e := From(errors.New("connection reset"))
		assert.Equal(t, KindInternal, e.Kind)
		assert.Equal(t, CodeInternal, e.Code)
	})
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "USER_NOT_FOUND", New(KindNotFound, CodeUserNotFound).Error())

	cause := errors.New("boom")
	wrapped := Wrap(KindInternal, CodeInternal, cause)
	assert.Equal(t, "INTERNAL: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", WithArgs(KindNotFound, CodeMatchNotFound, map[string]string{"id": "x"}))
	require.ErrorIs(t, err, New(KindNotFound, CodeMatchNotFound))
	assert.NotErrorIs(t, err, New(KindNotFound, CodeUserNotFound))
}
