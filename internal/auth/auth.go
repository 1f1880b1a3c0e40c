package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "docqa-server"

// download tokens are single-purpose and short-lived
const downloadTokenTTL = 15 * time.Minute

// creates a signed token granting access to one report file
func GenerateDownloadToken(secret, reportID string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("report token secret not set")
	}

	now := time.Now()

	claims := DownloadClaims{
		ReportID: reportID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(downloadTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// validates a download token and returns its claims
func ValidateDownloadToken(secret, tokenString string) (*DownloadClaims, error) {
	if secret == "" {
		return nil, fmt.Errorf("report token secret not set")
	}

	token, err := jwt.ParseWithClaims(tokenString, &DownloadClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*DownloadClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
