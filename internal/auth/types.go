package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// claims carried by a signed report download token
type DownloadClaims struct {
	ReportID string `json:"report_id"`
	jwt.RegisteredClaims
}
