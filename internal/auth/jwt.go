package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Sub      string `json:"sub"` // user id, decimal
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserID parses the subject back into the numeric user id. Returns 0 for a
// missing or malformed subject.
func (c *Claims) UserID() int64 {
	id, err := strconv.ParseInt(c.Sub, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func GenerateToken(secret string, userID int64, username string, ttl time.Duration) (string, error) {
	c := Claims{
		Sub:      strconv.FormatInt(userID, 10),
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(secret))
}

func ParseToken(secret, tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
