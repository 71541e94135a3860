package utils

import (
	"time"

	"github.com/SwatiiB/kleCanteen-sub000/entity"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried in every access token.
type Claims struct {
	UserID       uint   `json:"userId"`
	Role         string `json:"role"`
	CanteenID    uint   `json:"canteenId,omitempty"` // staff only
	UniversityID string `json:"universityId,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken mints a signed JWT for the user.
func GenerateToken(u entity.User, secret string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:       u.ID,
		Role:         u.Role,
		UniversityID: u.UniversityID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	if u.CanteenID != nil {
		claims.CanteenID = *u.CanteenID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
