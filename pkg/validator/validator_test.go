package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,notblank,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=student prefect"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name   string
		input  registerRequest
		fields map[string]string
	}{
		{
			name:  "valid",
			input: registerRequest{Username: "harry", Email: "harry@hogwarts.example", Password: "secret"},
		},
		{
			name:  "all missing",
			input: registerRequest{},
			fields: map[string]string{
				"username": "username is required",
				"email":    "email is required",
				"password": "password is required",
			},
		},
		{
			name:  "bad values",
			input: registerRequest{Username: strings.Repeat("h", 51), Email: "nope", Password: "1234", Role: "headmaster"},
			fields: map[string]string{
				"username": "username must not exceed 50 characters",
				"email":    "email must be a valid email address",
				"password": "password must be at least 5 characters",
				"role":     "role must be one of: student prefect",
			},
		},
		{
			name:   "blank username",
			input:  registerRequest{Username: "   ", Email: "harry@hogwarts.example", Password: "secret"},
			fields: map[string]string{"username": "username must not be blank"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Struct(tt.input)
			if tt.fields == nil {
				assert.False(t, errs.HasErrors())
				return
			}
			assert.Equal(t, ValidationErrors(tt.fields), errs)
		})
	}
}

func TestValidationErrors_First(t *testing.T) {
	errs := make(ValidationErrors)
	assert.Equal(t, "", errs.First())

	errs.Add("username", "username is required")
	errs.Add("email", "email is required")
	assert.Equal(t, "email is required", errs.First())
}
