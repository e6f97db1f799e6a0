package jwt

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundTrip(t *testing.T) {
	uid := uuid.New()

	tok, err := Issue("secret", uid, "SUPERVISOR", 1)
	require.NoError(t, err)

	claims, err := ParseAuth("Bearer "+tok, "secret")
	require.NoError(t, err)
	require.Equal(t, uid.String(), claims["sub"])
	require.Equal(t, "SUPERVISOR", claims["role"])
}

func TestParseAuthRejectsBadSecret(t *testing.T) {
	tok, err := Issue("secret", uuid.New(), "NORMAL", 1)
	require.NoError(t, err)

	_, err = ParseAuth(tok, "other-secret")
	require.Error(t, err)
}

func TestParseAuthMissingHeader(t *testing.T) {
	_, err := ParseAuth("", "secret")
	require.Error(t, err)

	_, err = ParseAuth("Bearer ", "secret")
	require.Error(t, err)
}
