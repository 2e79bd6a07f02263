package jwttoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
)

var jwtService = NewJWTService("test-signing-key", "test-issuer")

var viewer = domain.Viewer{
	UserID:     domain.NewUserID(),
	Role:       domain.RoleVerified,
	Provenance: domain.UserProvenanceCFT,
}

func Test_GenerateViewerToken(t *testing.T) {
	token, err := jwtService.GenerateViewerToken(viewer, time.Hour)
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, viewer.UserID.String(), claims.Subject)
	assert.Equal(t, "VERIFIED", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func Test_ValidateViewer(t *testing.T) {
	token, err := jwtService.GenerateViewerToken(viewer, time.Hour)
	require.NoError(t, err)

	got, err := jwtService.ValidateViewer(token)
	require.NoError(t, err)
	assert.Equal(t, viewer, got)
}

func Test_ValidateToken_InvalidToken(t *testing.T) {
	_, err := jwtService.ValidateToken("invalid-token-string")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_ExpiredToken(t *testing.T) {
	token, err := jwtService.GenerateViewerToken(viewer, -time.Hour)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token has expired")
}

func Test_ValidateToken_WrongIssuer(t *testing.T) {
	other := NewJWTService("test-signing-key", "someone-else")
	token, err := other.GenerateViewerToken(viewer, time.Hour)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_RejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		Role: "SYSTEM_ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   viewer.UserID.String(),
			Issuer:    "test-issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(signed)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateViewer_UnknownRoleDegrades(t *testing.T) {
	v := viewer
	v.Role = "SUPERUSER"
	token, err := jwtService.GenerateViewerToken(v, time.Hour)
	require.NoError(t, err)

	got, err := jwtService.ValidateViewer(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleNone, got.Role)
}
