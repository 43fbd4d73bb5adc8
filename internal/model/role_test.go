package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleReader))
	assert.True(t, RoleAdmin.AtLeast(RoleAuthor))
	assert.True(t, RoleAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleAuthor.AtLeast(RoleReader))
	assert.True(t, RoleAuthor.AtLeast(RoleAuthor))
	assert.False(t, RoleAuthor.AtLeast(RoleAdmin))
	assert.False(t, RoleReader.AtLeast(RoleAuthor))
	assert.False(t, RoleReader.AtLeast(RoleAdmin))

	invalid := Role(99)
	assert.False(t, invalid.AtLeast(RoleReader))
	assert.False(t, RoleAdmin.AtLeast(invalid))
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("author")
	require.NoError(t, err)
	assert.Equal(t, RoleAuthor, role)

	role, err = ParseRole("  Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("superuser")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSelfSelectableRole(t *testing.T) {
	assert.Equal(t, RoleAuthor, SelfSelectableRole("author"))
	assert.Equal(t, RoleAuthor, SelfSelectableRole(" AUTHOR "))
	assert.Equal(t, RoleReader, SelfSelectableRole("reader"))
	assert.Equal(t, RoleReader, SelfSelectableRole(""))
	// Admin can never be chosen at registration.
	assert.Equal(t, RoleReader, SelfSelectableRole("admin"))
}

func TestRole_JSON(t *testing.T) {
	data, err := json.Marshal(RoleAuthor)
	require.NoError(t, err)
	assert.Equal(t, `"author"`, string(data))

	var role Role
	require.NoError(t, json.Unmarshal([]byte(`"admin"`), &role))
	assert.Equal(t, RoleAdmin, role)

	assert.Error(t, json.Unmarshal([]byte(`"root"`), &role))

	_, err = json.Marshal(Role(42))
	assert.Error(t, err)
}
