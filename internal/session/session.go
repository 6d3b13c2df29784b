// Package session issues and validates the admin session token carried in
// the admin_session cookie. Tokens are HMAC-signed (HS256), carry the
// operator username and issue time, and expire 24 hours after issue with no
// sliding refresh. There is no revocation list: logout clears the cookie
// but a saved token value stays valid until it ages out.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

const (
	// CookieName is the admin session cookie.
	CookieName = "admin_session"

	// MaxAge is the token lifetime.
	MaxAge = 24 * time.Hour
)

var (
	ErrMalformedToken = errors.New("malformed session token")
	ErrTokenExpired   = errors.New("session token expired")
)

// Codec signs and verifies session tokens with a shared secret.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue produces a signed token for username at the given instant.
func (c *Codec) Issue(username string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(MaxAge)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign session token")
	}
	return signed, nil
}

// Decode verifies the signature and returns the username and issue time.
// Undecodable or tampered tokens return ErrMalformedToken; aged-out tokens
// return ErrTokenExpired.
func (c *Codec) Decode(tokenStr string) (username string, issuedAt time.Time, err error) {
	claims := new(jwt.RegisteredClaims)
	token, perr := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if perr != nil {
		if errors.Is(perr, jwt.ErrTokenExpired) {
			return "", time.Time{}, ErrTokenExpired
		}
		return "", time.Time{}, ErrMalformedToken
	}
	if !token.Valid || claims.Subject == "" || claims.IssuedAt == nil {
		return "", time.Time{}, ErrMalformedToken
	}
	return claims.Subject, claims.IssuedAt.Time, nil
}

// Validate reports whether tokenStr names the configured operator and was
// issued within MaxAge of now.
func (c *Codec) Validate(tokenStr string, now time.Time, configuredUsername string) bool {
	username, issuedAt, err := c.Decode(tokenStr)
	if err != nil {
		return false
	}
	if username != configuredUsername {
		return false
	}
	return now.Sub(issuedAt) < MaxAge
}
