package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors_FirstFollowsInsertionOrder(t *testing.T) {
	var f FieldErrors
	assert.True(t, f.Empty())
	assert.NoError(t, f.Err())

	f.Add("name", "The name field is required.")
	f.Add("email", "The email field must be a valid email address.")
	f.Add("name", "second name message")

	assert.Equal(t, []string{"name", "email"}, f.Fields)
	assert.True(t, f.Has("email"))
	assert.False(t, f.Has("salary"))
	assert.Equal(t, "The name field is required.", f.First())

	err := f.Err()
	require.Error(t, err)
	de := ToDomainError(err)
	assert.Equal(t, CodeValidationFailed, de.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, de.HTTPStatus)
	assert.Equal(t, "The name field is required.", de.Message)
	assert.Equal(t, []string{"The name field is required.", "second name message"}, de.Details["name"])
}

func TestToDomainError_WrapsUnknownErrors(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	de := ToDomainError(errors.New("boom"))
	assert.Equal(t, CodeInternal, de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)

	wrapped := fmt.Errorf("delete: %w", NewReferentialConflict("department has employees", nil))
	de = ToDomainError(wrapped)
	assert.Equal(t, CodeReferentialConflict, de.Code)
	assert.Equal(t, http.StatusConflict, de.HTTPStatus)
	assert.True(t, Is(wrapped, CodeReferentialConflict))
}

func TestNewAuthenticationFailed_IsGeneric(t *testing.T) {
	de := ToDomainError(NewAuthenticationFailed())
	assert.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
	assert.Equal(t, CredentialsIncorrect, de.Message)
	assert.Equal(t, []string{CredentialsIncorrect}, de.Details["email"])
}

func TestFromStatus(t *testing.T) {
	assert.Equal(t, CodeNotFound, FromStatus(http.StatusNotFound, "").Code)
	assert.Equal(t, "Not Found", FromStatus(http.StatusNotFound, "").Message)
	assert.Equal(t, CodeBadRequest, FromStatus(http.StatusMethodNotAllowed, "nope").Code)
	assert.Equal(t, CodeInternal, FromStatus(http.StatusBadGateway, "").Code)
}
