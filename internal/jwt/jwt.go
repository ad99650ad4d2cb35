// Package jwt signs the seat tokens that let a player reclaim their seat after reconnecting
package jwt

import (
	"errors"
	"fmt"
	"homegame-server/internal/config"
	"homegame-server/pkg/token"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Issuer issues the JWT
const Issuer = "homegame-server"

const generatedSecretLength = 43

// ErrInvalidToken is returned for any token that cannot be used to reclaim a seat
var ErrInvalidToken = errors.New("invalid seat token")

// Signer signs and validates HS256 seat tokens
// The subject is the player ID and the audience is the room ID.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner returns a signer for the secret
func NewSigner(secret []byte, ttl time.Duration) *Signer {
	return &Signer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// FromConfig returns a signer using the token configuration
// Without a configured secret a random one is generated, so tokens do not survive a restart.
func FromConfig() (*Signer, error) {
	cfg := config.Instance().Token

	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		logrus.Warn("no token secret configured, seat tokens will not survive a restart")
		generated, err := token.Generate(generatedSecretLength)
		if err != nil {
			return nil, err
		}

		secret = []byte(generated)
	}

	return NewSigner(secret, time.Duration(cfg.TTL)*time.Hour), nil
}

// Sign returns a token for the player's seat in the room
func (s *Signer) Sign(roomID, playerID string) (string, error) {
	now := s.now()
	claims := jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{roomID},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(now),
		Issuer:   Issuer,
		Subject:  playerID,
	}

	if s.ttl > 0 {
		claims.ExpiresAt = jwtgo.NewNumericDate(now.Add(s.ttl))
	}

	return jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify validates a token for the room and returns the player ID it was issued to
func (s *Signer) Verify(signedString, roomID string) (string, error) {
	claims := &jwtgo.RegisteredClaims{}
	_, err := jwtgo.ParseWithClaims(signedString, claims, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return s.secret, nil
	},
		jwtgo.WithAudience(roomID),
		jwtgo.WithIssuer(Issuer),
		jwtgo.WithTimeFunc(s.now),
	)

	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}
