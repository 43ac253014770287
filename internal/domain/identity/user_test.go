package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		role     Role
		wantErr  bool
	}{
		{name: "valid staff user", userName: "Sara", email: "sara@example.com", password: "secret1", role: RoleStaff},
		{name: "empty role defaults to staff", userName: "Omar", email: "omar@example.com", password: "secret1"},
		{name: "email lowercased", userName: "Yto", email: "YTO@Example.COM", password: "secret1"},
		{name: "short password", userName: "Sara", email: "sara@example.com", password: "abc", wantErr: true},
		{name: "missing name", userName: "", email: "sara@example.com", password: "secret1", wantErr: true},
		{name: "bad email", userName: "Sara", email: "not-an-email", password: "secret1", wantErr: true},
		{name: "unknown role", userName: "Sara", email: "sara@example.com", password: "secret1", role: Role("root"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(tt.userName, tt.email, tt.password, tt.role)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, u.Role.IsValid())
			assert.NotEqual(t, tt.password, u.PasswordHash)
			assert.Equal(t, strings.ToLower(tt.email), u.Email)
		})
	}
}

func TestUser_CheckPassword(t *testing.T) {
	u, err := NewUser("Admin", "admin@example.com", "admin123", RoleAdmin)
	require.NoError(t, err)

	assert.True(t, u.CheckPassword("admin123"))
	assert.False(t, u.CheckPassword("admin124"))
	assert.False(t, u.CheckPassword(""))
	assert.True(t, u.IsAdmin())
}
