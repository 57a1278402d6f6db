package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email     string `json:"email" validate:"omitempty,email"`
	NovaSenha string `json:"novaSenha" validate:"omitempty,min=6,bcryptmax"`
}

func TestValidate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sample{}))
	assert.NoError(t, v.Validate(&sample{Email: "a@x.com", NovaSenha: "123456"}))

	err := v.Validate(&sample{Email: "not-an-email", NovaSenha: "123"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"email": "email", "novaSenha": "min=6"}, FieldErrors(err))
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	assert.Nil(t, FieldErrors(errors.New("boom")))
}

func TestValidate_PasswordLimitCountsBytes(t *testing.T) {
	v := New()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "72 ascii bytes", password: strings.Repeat("a", 72)},
		{name: "73 ascii bytes", password: strings.Repeat("a", 73), wantErr: true},
		{name: "36 two-byte runes", password: strings.Repeat("é", 36)},
		{name: "40 two-byte runes", password: strings.Repeat("é", 40), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&sample{NovaSenha: tt.password})

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}
			require.Error(t, err)
			assert.Equal(t, map[string]string{"novaSenha": "bcryptmax"}, FieldErrors(err))
		})
	}
}
