package token

import (
	"testing"
	"time"

	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{
		ID:    uuid.New(),
		Email: "foreman@x.com",
		Role:  models.RoleForeman,
	}
}

func TestManager_IssueAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 7*24*time.Hour)
	user := testUser()

	pair, err := m.IssuePair(user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	for _, tok := range []string{pair.AccessToken, pair.RefreshToken} {
		claims, err := m.Parse(tok)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.UserID)
		require.Equal(t, user.Email, claims.Email)
		require.Equal(t, models.RoleForeman, claims.Role)
	}
}

func TestManager_ParseRejectsWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour, time.Hour)
	verifier := NewManager("secret-b", time.Hour, time.Hour)

	pair, err := issuer.IssuePair(testUser())
	require.NoError(t, err)

	_, err = verifier.Parse(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_ParseRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, -time.Minute)

	pair, err := m.IssuePair(testUser())
	require.NoError(t, err)

	_, err = m.Parse(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_ParseRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour, time.Hour)

	_, err := m.Parse("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
