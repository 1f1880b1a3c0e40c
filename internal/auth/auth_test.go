package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing"

func TestGenerateDownloadToken_Success(t *testing.T) {
	token, err := GenerateDownloadToken(testSecret, "comparison_report_20250601_143045.pdf")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, len(token) > 50, "token should be reasonably long")
	assert.Equal(t, 3, len(strings.Split(token, ".")), "token should have 3 parts")
}

func TestGenerateDownloadToken_MissingSecret(t *testing.T) {
	_, err := GenerateDownloadToken("", "report.pdf")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "secret not set")
}

func TestValidateDownloadToken_ValidToken(t *testing.T) {
	token, err := GenerateDownloadToken(testSecret, "report.pdf")
	require.NoError(t, err)

	claims, err := ValidateDownloadToken(testSecret, token)

	require.NoError(t, err)
	assert.Equal(t, "report.pdf", claims.ReportID)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestValidateDownloadToken_ExpiredToken(t *testing.T) {
	// create an expired token
	claims := DownloadClaims{
		ReportID: "report.pdf",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)), // expired 1 hour ago
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateDownloadToken(testSecret, tokenString)

	assert.Error(t, err, "expired token should be rejected")
}

func TestValidateDownloadToken_TamperedToken(t *testing.T) {
	token, err := GenerateDownloadToken(testSecret, "report.pdf")
	require.NoError(t, err)

	// tamper with the token by changing a character
	tamperedToken := token[:len(token)-5] + "XXXXX"

	_, err = ValidateDownloadToken(testSecret, tamperedToken)
	assert.Error(t, err, "tampered token should be rejected")
}

func TestValidateDownloadToken_WrongSecret(t *testing.T) {
	token, err := GenerateDownloadToken(testSecret, "report.pdf")
	require.NoError(t, err)

	_, err = ValidateDownloadToken("different-secret-key", token)

	assert.Error(t, err, "token signed with different secret should be rejected")
}

func TestValidateDownloadToken_WrongIssuer(t *testing.T) {
	claims := DownloadClaims{
		ReportID: "report.pdf",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateDownloadToken(testSecret, tokenString)

	assert.Error(t, err, "token from another issuer should be rejected")
}

func TestValidateDownloadToken_AlgorithmConfusionAttack(t *testing.T) {
	claims := DownloadClaims{
		ReportID: "../../etc/passwd",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	// attempt to use different signing method
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType) //nolint:errcheck // test code

	_, err := ValidateDownloadToken(testSecret, tokenString)
	assert.Error(t, err, "token with 'none' algorithm should be rejected")
}

func TestValidateDownloadToken_MalformedToken(t *testing.T) {
	malformedTokens := []string{
		"",
		"not.a.jwt",
		"only.two",
		"too.many.parts.in.this.token",
		"<script>alert('xss')</script>",
	}

	for _, token := range malformedTokens {
		_, err := ValidateDownloadToken(testSecret, token)
		assert.Error(t, err, "malformed token '%s' should be rejected", token)
	}
}

func TestDownloadToken_Expiration(t *testing.T) {
	token, err := GenerateDownloadToken(testSecret, "report.pdf")
	require.NoError(t, err)

	claims, err := ValidateDownloadToken(testSecret, token)
	require.NoError(t, err)

	// verify expiration matches the configured TTL
	expectedExpiry := time.Now().Add(downloadTokenTTL)
	actualExpiry := claims.ExpiresAt.Time
	timeDiff := actualExpiry.Sub(expectedExpiry).Abs()

	assert.Less(t, timeDiff, 5*time.Second, "expiration should be approximately the token TTL from now")
}

func TestDownloadToken_ClaimsIntegrity(t *testing.T) {
	testCases := []string{
		"comparison_report_20250601_143045.pdf",
		"comparison_report_20251231_235959.pdf",
	}

	for _, reportID := range testCases {
		token, err := GenerateDownloadToken(testSecret, reportID)
		require.NoError(t, err)

		claims, err := ValidateDownloadToken(testSecret, token)
		require.NoError(t, err)

		assert.Equal(t, reportID, claims.ReportID, "report id should match")
	}
}
