package email

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendEmailInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   SendEmailInput
		wantErr bool
	}{
		{
			name:  "valid input",
			input: SendEmailInput{To: "user@example.com", Subject: "Hello", Body: "<p>hi</p>"},
		},
		{
			name:    "empty to",
			input:   SendEmailInput{Subject: "Hello", Body: "hi"},
			wantErr: true,
		},
		{
			name:    "empty subject",
			input:   SendEmailInput{To: "user@example.com", Body: "hi"},
			wantErr: true,
		},
		{
			name:    "empty body",
			input:   SendEmailInput{To: "user@example.com", Subject: "Hello"},
			wantErr: true,
		},
		{
			name:    "invalid to",
			input:   SendEmailInput{To: "not-an-email", Subject: "Hello", Body: "hi"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestIsEmailValid(t *testing.T) {
	require.True(t, IsEmailValid("alice@x.com"))
	require.False(t, IsEmailValid("alice"))
	require.False(t, IsEmailValid("alice@"))
	require.False(t, IsEmailValid("@x.com"))
	require.False(t, IsEmailValid("a b@x.com"))
}
