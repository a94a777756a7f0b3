package jwt

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_1234567890"

func TestMaker_IssueAndVerify(t *testing.T) {
	maker := NewMaker(testSecret)

	tests := []struct {
		name      string
		accountID string
		role      string
	}{
		{name: "student", accountID: "6f1d3c4e-0000-4000-8000-000000000001", role: "student"},
		{name: "admin", accountID: "6f1d3c4e-0000-4000-8000-000000000002", role: "admin"},
		{name: "staff", accountID: "6f1d3c4e-0000-4000-8000-000000000003", role: "staff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.Issue(tt.accountID, tt.role, 15*time.Minute)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.Verify(token)
			require.NoError(t, err)

			assert.Equal(t, tt.accountID, claims.AccountID())
			assert.Equal(t, tt.role, claims.Role)
			assert.NotEmpty(t, claims.ID)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestMaker_UniqueTokenIDs(t *testing.T) {
	maker := NewMaker(testSecret)

	first, err := maker.Issue("acc", "student", time.Hour)
	require.NoError(t, err)
	second, err := maker.Issue("acc", "student", time.Hour)
	require.NoError(t, err)

	c1, err := maker.Verify(first)
	require.NoError(t, err)
	c2, err := maker.Verify(second)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestMaker_Expired(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
	}{
		{name: "нулевой ttl", ttl: 0},
		{name: "отрицательный ttl", ttl: -time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maker := NewMaker(testSecret)
			token, err := maker.Issue("acc", "student", tt.ttl)
			require.NoError(t, err)

			_, err = maker.Verify(token)
			assert.ErrorIs(t, err, ErrExpired)
			assert.NotErrorIs(t, err, ErrInvalidSignature)
		})
	}
}

func TestMaker_ExpiresWithClock(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	maker := NewMaker(testSecret).WithClock(func() time.Time { return now })

	token, err := maker.Issue("acc", "student", time.Hour)
	require.NoError(t, err)

	_, err = maker.Verify(token)
	require.NoError(t, err)

	now = now.Add(59 * time.Minute)
	_, err = maker.Verify(token)
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = maker.Verify(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestMaker_InvalidTokens(t *testing.T) {
	maker := NewMaker(testSecret)

	valid, err := maker.Issue("acc", "student", time.Hour)
	require.NoError(t, err)

	foreign, err := NewMaker("another_secret_key_0987654321").Issue("acc", "admin", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "пустой токен", token: ""},
		{name: "мусор", token: "invalid.token.here"},
		{name: "чужой секрет", token: foreign},
		{name: "хвост в подписи", token: valid + "tampered"},
		{name: "alg none", token: noneToken(t)},
		{name: "два сегмента", token: strings.Join(strings.Split(valid, ".")[:2], ".")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidSignature)
			assert.Nil(t, claims)
		})
	}
}

// Любой измененный бит полезной нагрузки дает ErrInvalidSignature, а не ErrExpired,
// даже если токен к тому же просрочен.
func TestMaker_PayloadBitFlip(t *testing.T) {
	maker := NewMaker(testSecret)

	for _, ttl := range []time.Duration{time.Hour, -time.Hour} {
		token, err := maker.Issue("acc", "student", ttl)
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		payload, err := base64.RawURLEncoding.DecodeString(parts[1])
		require.NoError(t, err)

		for i := range payload {
			for bit := 0; bit < 8; bit += 3 {
				mutated := append([]byte(nil), payload...)
				mutated[i] ^= 1 << bit
				forged := parts[0] + "." + base64.RawURLEncoding.EncodeToString(mutated) + "." + parts[2]

				_, err := maker.Verify(forged)
				require.ErrorIs(t, err, ErrInvalidSignature, "byte %d bit %d", i, bit)
				require.NotErrorIs(t, err, ErrExpired)
			}
		}
	}
}

func TestMaker_RejectsOtherAlgorithms(t *testing.T) {
	maker := NewMaker(testSecret)

	claims := Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "acc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = maker.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestMaker_RequiresSubject(t *testing.T) {
	maker := NewMaker(testSecret)

	token, err := maker.Issue("", "student", time.Hour)
	require.NoError(t, err)

	_, err = maker.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func noneToken(t *testing.T) string {
	t.Helper()
	claims := Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "acc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return token
}
