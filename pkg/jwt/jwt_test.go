package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/deposit-core/pkg/jwt"
)

func TestAuth_IssueAndVerify(t *testing.T) {
	auth, err := jwt.NewAuth("salt", time.Hour, "node-1", []byte("secret"))
	require.NoError(t, err)

	token, err := auth.IssueJWT()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.True(t, auth.VerifyJWT(token, func(_ *jwt.AuthClaims) bool { return true }))
	require.False(t, auth.VerifyJWT(token, func(_ *jwt.AuthClaims) bool { return false }))
	require.False(t, auth.VerifyJWT("not-a-token", func(_ *jwt.AuthClaims) bool { return true }))
}

func TestAuth_DifferentSaltInvalidatesTokens(t *testing.T) {
	issuer, err := jwt.NewAuth("salt-a", time.Hour, "node-1", []byte("secret"))
	require.NoError(t, err)
	verifier, err := jwt.NewAuth("salt-b", time.Hour, "node-1", []byte("secret"))
	require.NoError(t, err)

	token, err := issuer.IssueJWT()
	require.NoError(t, err)

	require.False(t, verifier.VerifyJWT(token, func(_ *jwt.AuthClaims) bool { return true }))
}

func TestAuth_RejectsForeignSubject(t *testing.T) {
	issuer, err := jwt.NewAuth("salt", time.Hour, "node-1", []byte("secret"))
	require.NoError(t, err)
	verifier, err := jwt.NewAuth("salt", time.Hour, "node-2", []byte("secret"))
	require.NoError(t, err)

	token, err := issuer.IssueJWT()
	require.NoError(t, err)

	require.False(t, verifier.VerifyJWT(token, func(_ *jwt.AuthClaims) bool { return true }))
}
