package errors

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Conflict("already approved"), http.StatusBadRequest},
		{NotFoundMsg("missing"), http.StatusNotFound},
		{Unauthenticated("no token"), http.StatusUnauthorized},
		{Unauthorized("wrong role"), http.StatusForbidden},
		{Internal("boom", nil), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode(), tc.err.Message)
	}
}

func TestErrorIncludesWrappedCause(t *testing.T) {
	err := NotFound("user", sql.ErrNoRows)
	assert.Equal(t, "user not found", err.Message)
	assert.Contains(t, err.Error(), "no rows")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestIsCodeThroughWrapping(t *testing.T) {
	inner := Conflict("already rejected")
	wrapped := fmt.Errorf("handling request: %w", inner)

	assert.True(t, IsConflict(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.False(t, IsConflict(sql.ErrNoRows))
}
