package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCompare(t *testing.T) {
	hash, err := Hash("admin")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		match bool
	}{
		{name: "exact", input: "admin", match: true},
		{name: "surrounding spaces", input: "  admin\t", match: true},
		{name: "wrong case", input: "Admin", match: false},
		{name: "wrong password", input: "user", match: false},
		{name: "empty", input: "", match: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Compare(hash, tt.input)
			if tt.match {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword)
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := Hash("user")
	require.NoError(t, err)
	second, err := Hash("user")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCompare_BadHash(t *testing.T) {
	assert.Error(t, Compare("not-a-hash", "admin"))
}
