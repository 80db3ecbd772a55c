package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const flashCookie = "flash"

type flashClaims struct {
	Message string `json:"msg"`
	jwt.RegisteredClaims
}

// flashStore passes one-shot messages across a redirect in a signed cookie.
type flashStore struct {
	secret []byte
	ttl    time.Duration
}

func newFlashStore(secret []byte, ttl time.Duration) *flashStore {
	return &flashStore{secret: secret, ttl: ttl}
}

func (f *flashStore) set(c *gin.Context, message string) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, flashClaims{
		Message: message,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(f.ttl)),
		},
	})
	signed, err := token.SignedString(f.secret)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, signed, int(f.ttl.Seconds()), "/", "", false, true)
	return nil
}

// pop returns the pending message and clears it. Tampered or expired cookies read as empty.
func (f *flashStore) pop(c *gin.Context) string {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	var claims flashClaims
	_, err = jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return f.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ""
	}
	return claims.Message
}
