package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("token không hợp lệ")

type JWTClaims struct {
	ParticipantID uint `json:"participant_id"`
	Admin         bool `json:"admin"`
	jwt.RegisteredClaims
}

// GenerateToken ký JWT cho participant, hết hạn sau ttl.
func GenerateToken(secret []byte, participantID uint, admin bool, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("JWT_SECRET is not set")
	}
	now := time.Now()
	claims := JWTClaims{
		ParticipantID: participantID,
		Admin:         admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(participantID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken xác minh và parse JWT token
func VerifyToken(secret []byte, tokenStr string) (*JWTClaims, error) {
	if len(secret) == 0 {
		return nil, errors.New("JWT_SECRET is not set")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
