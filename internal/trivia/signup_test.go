package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSignup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		password string
		email    string
		want     error
	}{
		{
			name:     "valid",
			username: "alice1",
			password: "Sup3r.secret",
			email:    "alice@example.com",
		},
		{
			name:     "short username",
			username: "bob",
			password: "Sup3r.secret",
			email:    "bob@example.com",
			want:     ShortUsernameErr,
		},
		{
			name:     "short password",
			username: "alice1",
			password: "Ab1.",
			email:    "alice@example.com",
			want:     WeakPasswordErr,
		},
		{
			name:     "no uppercase",
			username: "alice1",
			password: "sup3r.secret",
			email:    "alice@example.com",
			want:     WeakPasswordErr,
		},
		{
			name:     "no digit",
			username: "alice1",
			password: "Super.secret",
			email:    "alice@example.com",
			want:     WeakPasswordErr,
		},
		{
			name:     "no special",
			username: "alice1",
			password: "Sup3rsecret",
			email:    "alice@example.com",
			want:     WeakPasswordErr,
		},
		{
			name:     "missing at sign",
			username: "alice1",
			password: "Sup3r.secret",
			email:    "alice.example.com",
			want:     IllegalEmailErr,
		},
		{
			name:     "long top level domain",
			username: "alice1",
			password: "Sup3r.secret",
			email:    "alice@example.company",
			want:     IllegalEmailErr,
		},
		{
			name:     "empty email",
			username: "alice1",
			password: "Sup3r.secret",
			email:    "",
			want:     IllegalEmailErr,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateSignup(tt.username, tt.password, tt.email)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
