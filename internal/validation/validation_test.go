package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signup struct {
	Name     string `validate:"notblank" msg:"Name is required"`
	Email    string `validate:"required,email" msg:"Please include a valid email"`
	Password string `validate:"min=6" msg:"Please enter a password with 6 or more characters"`
	Nickname string `validate:"omitempty,max=3"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name string
		in   signup
		want []string
	}{
		{
			name: "valid",
			in:   signup{Name: "Ada", Email: "ada@example.com", Password: "secret"},
			want: nil,
		},
		{
			name: "every field reported in order",
			in:   signup{Name: "   ", Email: "nope", Password: "123"},
			want: []string{
				"Name is required",
				"Please include a valid email",
				"Please enter a password with 6 or more characters",
			},
		},
		{
			name: "fallback message without tag",
			in:   signup{Name: "Ada", Email: "ada@example.com", Password: "secret", Nickname: "toolong"},
			want: []string{"Nickname is invalid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Struct(&tt.in))
		})
	}
}
