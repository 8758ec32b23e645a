package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	u, err := CreateUser("Carla Mendoza", "carla@example.com", "secret123", USER_TYPE_PERSON)
	require.NoError(t, err)

	assert.Equal(t, ROLE_USER, u.Role)
	assert.Equal(t, STATUS_INACTIVE, u.Status)
	assert.Equal(t, USER_TYPE_PERSON, u.UserType)
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, CheckPasswordHash("secret123", u.Password))
}

func TestCreateUserUnknownTypeFallsBackToPerson(t *testing.T) {
	u, err := CreateUser("Carla Mendoza", "carla@example.com", "secret123", "alien")
	require.NoError(t, err)
	assert.Equal(t, USER_TYPE_PERSON, u.UserType)
}

func TestCreateUserInvalidEmail(t *testing.T) {
	_, err := CreateUser("Carla Mendoza", "not-an-email", "secret123", USER_TYPE_BUSINESS)
	assert.Error(t, err)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}
