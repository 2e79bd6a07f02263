package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
)

// Claims are the viewer claims carried by bearer tokens issued by the
// sign-in service.
type Claims struct {
	Role       string `json:"role"`
	Provenance string `json:"provenance"`
	jwt.RegisteredClaims
}

// JWTService issues and validates viewer tokens.
type JWTService struct {
	signingKey []byte
	issuer     string
	now        func() time.Time
}

func NewJWTService(signingKey string, issuer string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		now:        time.Now,
	}
}

// GenerateViewerToken signs a token for v. Used by local tooling and tests;
// production tokens come from the sign-in service with the same key.
func (s *JWTService) GenerateViewerToken(v domain.Viewer, expiresIn time.Duration) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:       string(v.Role),
		Provenance: string(v.Provenance),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   v.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(s.signingKey)
}

// ValidateToken verifies signature, issuer and expiry.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return s.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// ValidateViewer validates tokenString and converts its claims to a Viewer.
// Unknown roles degrade to no role rather than failing.
func (s *JWTService) ValidateViewer(tokenString string) (domain.Viewer, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return domain.Viewer{}, err
	}
	userID, err := domain.ParseUserID(claims.Subject)
	if err != nil {
		return domain.Viewer{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token subject")
	}
	return domain.Viewer{
		UserID:     userID,
		Role:       domain.ParseUserRole(claims.Role),
		Provenance: domain.ParseUserProvenance(claims.Provenance),
	}, nil
}
