package members_test

import (
	"testing"

	"github.com/quickqueue/member-auth/members"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	hasher := members.NewBcryptHasher(4)

	hash, err := hasher.Hash("test1234")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "test1234", hash)

	require.True(t, hasher.Matches("test1234", hash))
	require.False(t, hasher.Matches("test123", hash))
	require.False(t, hasher.Matches("test1234", "not-a-hash"))
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{name: "valid password", password: "Passw0rd"},
		{name: "too short", password: "Pw1", wantErr: "at least 8 characters"},
		{name: "no uppercase", password: "passw0rd", wantErr: "uppercase"},
		{name: "no lowercase", password: "PASSW0RD", wantErr: "lowercase"},
		{name: "no number", password: "Password", wantErr: "number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := members.ValidatePasswordStrength(tt.password)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
