package accountcmd

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// JWTTokenAssertion is a fluent helper for asserting token claims in tests.
type JWTTokenAssertion struct {
	t        *testing.T
	token    string
	jwttoken *jwt.Token
	claims   jwt.MapClaims
}

func NewJWTTokenAssertion(t *testing.T, token string, secretkey []byte) *JWTTokenAssertion {
	t.Helper()

	jwttoken, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return secretkey, nil
	})
	require.NoError(t, err)

	claims, ok := jwttoken.Claims.(jwt.MapClaims)
	require.True(t, ok, "jwt token claims must be type jwt.MapClaims")

	return &JWTTokenAssertion{
		t:        t,
		token:    token,
		jwttoken: jwttoken,
		claims:   claims,
	}
}

func (a *JWTTokenAssertion) AssertValid() *JWTTokenAssertion {
	a.t.Helper()
	assert.NotNil(a.t, a.jwttoken, "jwt token should not be nil")
	assert.True(a.t, a.jwttoken.Valid, "jwt token should be valid")
	return a
}

func (a *JWTTokenAssertion) AssertISS(expected string) *JWTTokenAssertion {
	a.t.Helper()
	assert.Equal(a.t, a.claims["iss"], expected)
	return a
}

func (a *JWTTokenAssertion) AssertSub(expected string) *JWTTokenAssertion {
	a.t.Helper()
	assert.Equal(a.t, a.claims["sub"], expected)
	return a
}

func (a *JWTTokenAssertion) AssertExp(expected time.Time) *JWTTokenAssertion {
	a.t.Helper()
	exp, ok := a.claims["exp"].(float64)
	require.True(a.t, ok, "exp claim must be of type float64, got %T", a.claims["exp"])
	assert.NotZero(a.t, exp, "exp claim should not be zero")
	expTime := time.Unix(int64(exp), 0)
	assert.WithinDuration(a.t, expected, expTime, time.Second, "exp claim should be within 1 second of expected time")
	return a
}

func (a *JWTTokenAssertion) AssertIAT(expected time.Time) *JWTTokenAssertion {
	a.t.Helper()
	iat, ok := a.claims["iat"].(float64)
	require.True(a.t, ok, "iat claim must be of type float64, got %T", a.claims["iat"])

	assert.NotZero(a.t, iat, "iat claim should not be zero")
	iatTime := time.Unix(int64(iat), 0)

	assert.WithinDuration(a.t, expected, iatTime, time.Second, "iat claim should be within 1 second of expected time")
	return a
}

func (a *JWTTokenAssertion) AssertUID(expected string) *JWTTokenAssertion {
	a.t.Helper()
	assert.Equal(a.t, a.claims["uid"], expected)
	return a
}

func (a *JWTTokenAssertion) AssertEmail(expected string) *JWTTokenAssertion {
	a.t.Helper()
	assert.Equal(a.t, a.claims["email"], expected)
	return a
}

func (a *JWTTokenAssertion) AssertLoggedIn() *JWTTokenAssertion {
	a.t.Helper()
	assert.Equal(a.t, a.claims["logged_in"], true)
	return a
}
