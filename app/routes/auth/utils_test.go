package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sourabh6826/school-erp/app/models"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &models.User{
		ID:    "user-1",
		Email: "clerk@school.local",
		Roles: []*models.Role{{ID: "role-1", Name: "accountant"}},
	}

	token, err := GenerateJWT(user)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "clerk@school.local", claims.Email)
	assert.Equal(t, []string{"accountant"}, claims.Roles)
}

func TestValidateJWTRejectsBadTokens(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "clerk@school.local"}
	token, err := GenerateJWT(user)
	require.NoError(t, err)

	_, err = ValidateJWT(token + "x")
	assert.Error(t, err)

	_, err = ValidateJWT("not-a-token")
	assert.Error(t, err)
}
