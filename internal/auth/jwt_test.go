package auth

import (
	"testing"
	"time"

	"blog-service/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	s := NewService("super-secret", time.Hour)

	tok, err := s.Issue(42, "jo@x.com")
	require.NoError(t, err)

	claims, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "jo@x.com", claims.Email)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	s := NewService("secret", -1*time.Second)

	tok, err := s.Issue(1, "a@b.com")
	require.NoError(t, err)

	_, err = s.Verify(tok)
	require.Error(t, err)
	assert.Equal(t, common.KindUnauthorized, common.KindOf(err))
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewService("right-secret", time.Hour)
	verifier := NewService("wrong-secret", time.Hour)

	tok, err := issuer.Issue(1, "a@b.com")
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	require.Error(t, err)
	assert.Equal(t, common.KindUnauthorized, common.KindOf(err))
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	s := NewService("k", time.Hour)

	_, err := s.Verify("not.a.jwt")
	require.Error(t, err)
	assert.Equal(t, common.KindUnauthorized, common.KindOf(err))
}
