package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("token_invalid")
	ErrTokenExpired = errors.New("token_expired")
)

// Claims is the decoded identity a verified token asserts.
type Claims struct {
	UserID   string
	Email    string
	Verified bool
}

type JWTManager struct {
	secret    []byte
	accessTTL time.Duration
}

func NewJWTManager(secret string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), accessTTL: accessTTL}
}

// Issue mints a signed access token carrying the user's identity and
// verification status. The token is self-contained; nothing is stored
// server-side, so it stays valid until exp regardless of later account
// changes.
func (j *JWTManager) Issue(userID, email string, verified bool) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(j.accessTTL)
	claims := jwt.MapClaims{
		"sub":      userID,
		"email":    email,
		"verified": verified,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := t.SignedString(j.secret)
	return token, exp, err
}

// Verify decodes and validates a presented token. Expiry is reported
// separately from all other failures so callers can distinguish a stale
// session from a forged or malformed one.
func (j *JWTManager) Verify(token string) (*Claims, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, ErrTokenInvalid
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	verified, _ := claims["verified"].(bool)
	if sub == "" {
		return nil, ErrTokenInvalid
	}
	return &Claims{UserID: sub, Email: email, Verified: verified}, nil
}
