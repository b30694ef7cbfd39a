package authflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePassword_MeetsPolicy(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		password, err := GeneratePassword()
		require.NoError(t, err)

		assert.Len(t, password, passwordLength)
		assert.True(t, PasswordMeetsPolicy(password), password)
		seen[password] = true
	}

	// 50 draws from a 94^16 space colliding would mean a broken generator.
	assert.Len(t, seen, 50)
}

func TestPasswordMeetsPolicy(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Aa1!Aa1!Aa1!", true},
		{"Aa1!Aa1!Aa1", false},        // too short
		{"aaaaaaaaaaa1!", false},      // no uppercase
		{"AAAAAAAAAAA1!", false},      // no lowercase
		{"Aaaaaaaaaaaa!", false},      // no digit
		{"Aaaaaaaaaaaa1", false},      // no symbol
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PasswordMeetsPolicy(tt.password), tt.password)
	}
}
