package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

var ErrInvalidShareToken = errors.New("invalid share token")

// ShareClaims grant read-only access to one game's scoreboard.
type ShareClaims struct {
	GameID  string `json:"gid"`
	OwnerID string `json:"own"`
	jwt.StandardClaims
}

// ShareService signs and checks scoreboard share tokens.
type ShareService struct {
	secret string
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewShareService(secret, issuer string, ttl time.Duration) *ShareService {
	return &ShareService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// GenerateToken signs a token for the owner's game.
func (s *ShareService) GenerateToken(gameID, ownerID string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("share service is nil")
	}
	if gameID == "" || ownerID == "" {
		return "", fmt.Errorf("game and owner are required")
	}
	if s.secret == "" {
		return "", fmt.Errorf("share secret is not configured")
	}

	now := s.now()
	claims := ShareClaims{
		GameID:  gameID,
		OwnerID: ownerID,
		StandardClaims: jwt.StandardClaims{
			Issuer:    s.issuer,
			Subject:   gameID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// ParseToken verifies the signature, issuer and expiry of a token. Expiry is
// checked against the service clock.
func (s *ShareService) ParseToken(tokenString string) (ShareClaims, error) {
	var claims ShareClaims
	parser := jwt.Parser{SkipClaimsValidation: true}
	token, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return ShareClaims{}, fmt.Errorf("%w: %v", ErrInvalidShareToken, err)
	}
	if !token.Valid || claims.GameID == "" || claims.OwnerID == "" {
		return ShareClaims{}, ErrInvalidShareToken
	}
	now := s.now().Unix()
	if !claims.VerifyExpiresAt(now, true) {
		return ShareClaims{}, fmt.Errorf("%w: token is expired", ErrInvalidShareToken)
	}
	if !claims.VerifyIssuedAt(now, false) {
		return ShareClaims{}, fmt.Errorf("%w: token used before issued", ErrInvalidShareToken)
	}
	if s.issuer != "" && !claims.VerifyIssuer(s.issuer, true) {
		return ShareClaims{}, fmt.Errorf("%w: wrong issuer", ErrInvalidShareToken)
	}
	return claims, nil
}
