package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_IssueAndVerify(t *testing.T) {
	mgr := NewJWTManager("token-secret", 8*time.Hour)

	token, exp, err := mgr.Issue("user-1", "a@a.com", true)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), exp, 5*time.Second)

	claims, err := mgr.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@a.com", claims.Email)
	assert.True(t, claims.Verified)
}

func TestJWTManager_Expired(t *testing.T) {
	mgr := NewJWTManager("token-secret", -time.Minute)

	token, _, err := mgr.Issue("user-1", "a@a.com", false)
	require.NoError(t, err)

	_, err = mgr.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("secret-one", time.Hour).Issue("user-1", "a@a.com", false)
	require.NoError(t, err)

	_, err = NewJWTManager("secret-two", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTManager_Malformed(t *testing.T) {
	mgr := NewJWTManager("token-secret", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := mgr.Verify(tok)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", tok)
	}
}
