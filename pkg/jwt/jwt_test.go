package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Minute)
	clientID := uuid.New()

	token, err := m.GenerateAccessToken(clientID, "ci-client", RoleImporter)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, clientID, claims.ClientID)
	require.Equal(t, "ci-client", claims.Name)
	require.Equal(t, RoleImporter, claims.Role)
	require.Equal(t, clientID.String(), claims.Subject)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Minute).GenerateAccessToken(uuid.New(), "x", RoleReader)
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Minute).ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.GenerateAccessToken(uuid.New(), "x", RoleReader)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Minute).ValidateAccessToken("not-a-token")
	require.Error(t, err)
}
