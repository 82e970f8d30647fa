package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"omitempty,email"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
}

func TestValidateReportsJSONNames(t *testing.T) {
	err := Validate(sample{Email: "nope", Rating: 7})
	require.Error(t, err)

	var ve ValidationError
	require.True(t, errors.As(err, &ve))
	assert.ElementsMatch(t, []FieldError{
		{Field: "name", Rule: "required"},
		{Field: "email", Rule: "email"},
		{Field: "rating", Rule: "max", Param: "5"},
	}, ve.Fields)
	assert.Equal(t, "invalid name, email, rating", ve.Error())
}

func TestValidatePasses(t *testing.T) {
	assert.NoError(t, Validate(sample{Name: "Лулу", Rating: 5}))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "booking not found", NotFoundError{Resource: "booking"}.Error())
	assert.Equal(t, "could not validate credentials", UnauthorizedError{}.Error())
	assert.Equal(t, "not enough permissions", ForbiddenError{}.Error())
	assert.Equal(t, "status: unknown", ValidationError{Field: "status", Msg: "unknown"}.Error())
	assert.True(t, IsInternal(InternalError{Err: errors.New("x")}))
	assert.False(t, IsNotFound(errors.New("x")))
}
