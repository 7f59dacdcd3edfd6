package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Username string `validate:"required,min=4,max=30"`
	Email    string `validate:"required,email"`
	Rating   int    `validate:"omitempty,gte=1,lte=5"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(sampleRequest{
		Username: "someone",
		Email:    "someone@example.com",
		Rating:   3,
	}))

	errs := ValidateStruct(sampleRequest{Username: "abc", Email: "nope", Rating: 9})
	assert.Len(t, errs, 3)
	assert.Contains(t, errs, "username must be at least 4 characters long")
	assert.Contains(t, errs, "email must be a valid email address")
	assert.Contains(t, errs, "rating must be 5 or less")
}

func TestValidateStructMissingRequired(t *testing.T) {
	errs := ValidateStruct(sampleRequest{})
	assert.Contains(t, errs, "username is required")
	assert.Contains(t, errs, "email is required")
}
