package session_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/session"
)

var alice = domain.Identity{UserID: 42, Name: "Alice", Email: "alice@example.com", IsAdmin: true}

func TestIssuer_RoundTrip(t *testing.T) {
	iss := session.NewIssuer("secret", time.Hour)

	token, err := iss.Issue(alice)
	require.NoError(t, err)

	got, err := iss.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, alice, got)
}

func TestIssuer_Parse_WrongSecret(t *testing.T) {
	token, err := session.NewIssuer("secret", time.Hour).Issue(alice)
	require.NoError(t, err)

	_, err = session.NewIssuer("other", time.Hour).Parse(token)

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestIssuer_Parse_Expired(t *testing.T) {
	issued := time.Date(2025, 1, 25, 12, 0, 0, 0, time.UTC)
	iss := session.NewIssuer("secret", time.Hour).WithClock(func() time.Time { return issued })

	token, err := iss.Issue(alice)
	require.NoError(t, err)

	later := iss.WithClock(func() time.Time { return issued.Add(2 * time.Hour) })
	_, err = later.Parse(token)

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Contains(t, err.Error(), "expired")
}

func TestIssuer_Parse_RejectsOtherAlgorithms(t *testing.T) {
	claims := session.Claims{
		Name: "Mallory",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "travelbook",
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = session.NewIssuer("secret", time.Hour).Parse(token)

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestIssuer_Parse_Garbage(t *testing.T) {
	iss := session.NewIssuer("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := iss.Parse(token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated, "token %q", token)
	}
}

func TestFile_SaveLoadRemove(t *testing.T) {
	f := session.NewFile(filepath.Join(t.TempDir(), "nested", "session"))

	_, err := f.Load()
	assert.ErrorIs(t, err, domain.ErrUnauthenticated, "no file yet")

	require.NoError(t, f.Save("token-1"))
	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "token-1", got)

	info, err := os.Stat(f.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, f.Save("token-2"))
	got, err = f.Load()
	require.NoError(t, err)
	assert.Equal(t, "token-2", got)

	require.NoError(t, f.Remove())
	_, err = f.Load()
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.NoError(t, f.Remove(), "removing twice is fine")
}
