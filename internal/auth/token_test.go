package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 30*time.Minute)

	issued, err := tm.GenerateToken(42)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)
	assert.Equal(t, int64(42), issued.UserID)
	assert.WithinDuration(t, issued.IssuedAt.Add(30*time.Minute), issued.ExpiresAt, time.Second)

	claims, err := tm.ParseToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, claims.ID)
	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenManager_UniqueIDs(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	a, err := tm.GenerateToken(1)
	require.NoError(t, err)
	b, err := tm.GenerateToken(1)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.Token, b.Token)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	issued, err := NewTokenManager("one", time.Hour).GenerateToken(1)
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).ParseToken(issued.Token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)
	start := time.Now()
	tm.now = func() time.Time { return start }
	issued, err := tm.GenerateToken(1)
	require.NoError(t, err)

	tm.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = tm.ParseToken(issued.Token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ID:      "x",
		Issuer:  issuer,
		Subject: "1",
	}})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).ParseToken(signed)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("password", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)
	assert.NoError(t, ComparePassword(hash, "password"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}

func TestHashPassword_OutOfRangeCostFallsBack(t *testing.T) {
	cost, ok := HashCost(40)
	assert.False(t, ok)
	assert.Equal(t, bcrypt.DefaultCost, cost)

	cost, ok = HashCost(bcrypt.MinCost)
	assert.True(t, ok)
	assert.Equal(t, bcrypt.MinCost, cost)

	hash, err := HashPassword("password", 40)
	require.NoError(t, err)
	got, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, got)
}
