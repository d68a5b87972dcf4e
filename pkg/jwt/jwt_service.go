package jwt

import (
	"errors"
	"fmt"
	"time"

	"SlimMom-Backend/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const SessionTTL = time.Hour

type (
	JWTService interface {
		GenerateSessionToken(claims SessionClaims) (string, error)
		ValidateSessionToken(token string) (*SessionClaims, error)
	}

	SessionClaims struct {
		UserID       string `json:"user_id"`
		Email        string `json:"email"`
		Subscription string `json:"subscription"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey []byte
		issuer    string
		ttl       time.Duration
		now       func() time.Time
	}
)

func NewJWTService(secret, issuer string) JWTService {
	return &jwtService{
		secretKey: []byte(secret),
		issuer:    issuer,
		ttl:       SessionTTL,
		now:       time.Now,
	}
}

// GenerateSessionToken signs claims with HS256. The registered claims are
// always overwritten and carry a fresh id, so two logins never share a token.
func (j *jwtService) GenerateSessionToken(claims SessionClaims) (string, error) {
	now := j.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   claims.UserID,
		ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    j.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return j.secretKey, nil
}

func (j *jwtService) ValidateSessionToken(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid || claims.UserID == "" {
		return nil, domain.ErrTokenInvalid
	}
	if j.issuer != "" && !claims.VerifyIssuer(j.issuer, true) {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
