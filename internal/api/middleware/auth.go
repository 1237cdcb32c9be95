package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-composable-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-composable-ledger/internal/domain"
	"github.com/feral-file/ff-composable-ledger/internal/logger"
)

type contextKey string

const (
	AUTH_TYPE_JWT    = "jwt"
	AUTH_TYPE_APIKEY = "apikey"

	AUTH_TYPE_KEY    contextKey = "auth_type"
	AUTH_SUBJECT_KEY contextKey = "auth_subject"
)

// AuthConfig holds the credentials accepted by the ledger API.
// Parent and holder routes take an RS256 JWT whose subject is the caller's address.
// Registry callbacks take a static API key.
type AuthConfig struct {
	JWTPublicKey string // PEM, PKIX or PKCS1
	APIKeys      []string
}

// AuthResult is the outcome of checking one Authorization header
type AuthResult struct {
	Success     bool
	AuthType    string
	AuthSubject string
	Error       error
}

// Authenticate checks an Authorization header of the form "Bearer <jwt>" or "ApiKey <key>"
func Authenticate(authHeader string, cfg AuthConfig) AuthResult {
	if authHeader == "" {
		return AuthResult{Error: errors.New("missing Authorization header")}
	}
	scheme, credentials, ok := strings.Cut(authHeader, " ")
	if !ok {
		return AuthResult{Error: errors.New("invalid Authorization header format")}
	}

	switch strings.ToLower(scheme) {
	case "bearer":
		subject, err := verifyToken(credentials, cfg.JWTPublicKey)
		if err != nil {
			return AuthResult{Error: err}
		}
		return AuthResult{Success: true, AuthType: AUTH_TYPE_JWT, AuthSubject: subject}
	case "apikey":
		if err := matchAPIKey(credentials, cfg.APIKeys); err != nil {
			return AuthResult{Error: err}
		}
		return AuthResult{Success: true, AuthType: AUTH_TYPE_APIKEY}
	default:
		return AuthResult{Error: fmt.Errorf("unsupported authorization type: %s", scheme)}
	}
}

// JWTAuth guards the routes acting on behalf of a token holder or parent owner
func JWTAuth(cfg AuthConfig) gin.HandlerFunc {
	return authenticate(cfg, AUTH_TYPE_JWT)
}

// APIKeyAuth guards the routes child registries call into
func APIKeyAuth(cfg AuthConfig) gin.HandlerFunc {
	return authenticate(cfg, AUTH_TYPE_APIKEY)
}

// CallerAddress returns the address named by the subject of the request's JWT
func CallerAddress(c *gin.Context) (common.Address, error) {
	subject := c.GetString(AUTH_SUBJECT_KEY)
	if subject == "" {
		return common.Address{}, errors.New("no authenticated subject")
	}
	return domain.ParseAddress(subject)
}

func authenticate(cfg AuthConfig, allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := Authenticate(c.GetHeader("Authorization"), cfg)
		if result.Success && !slices.Contains(allowed, result.AuthType) {
			result = AuthResult{Error: fmt.Errorf("authorization type %s not accepted for this endpoint", result.AuthType)}
		}

		if !result.Success {
			logger.WarnCtx(c.Request.Context(), "Authentication failed",
				zap.Error(result.Error),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierrors.NewUnauthorizedError("Authentication failed", result.Error.Error()))
			return
		}

		c.Set(AUTH_TYPE_KEY, result.AuthType)
		if result.AuthSubject != "" {
			c.Set(AUTH_SUBJECT_KEY, result.AuthSubject)
		}
		logger.DebugCtx(c.Request.Context(), "Authenticated",
			zap.String("type", result.AuthType),
			zap.String("subject", result.AuthSubject),
			zap.String("path", c.Request.URL.Path),
		)

		c.Next()
	}
}

// verifyToken checks an RS256 token and returns its subject.
// jwt/v5 rejects expired and not-yet-valid tokens during parsing.
func verifyToken(token string, publicKeyPEM string) (string, error) {
	if publicKeyPEM == "" {
		return "", errors.New("JWT public key not configured")
	}
	publicKey, err := parseRSAPublicKey(publicKeyPEM)
	if err != nil {
		return "", fmt.Errorf("failed to parse RSA public key: %w", err)
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !parsed.Valid {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}
	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}
	return rsaKey, nil
}

func matchAPIKey(key string, keys []string) error {
	if !slices.ContainsFunc(keys, func(k string) bool { return k != "" }) {
		return errors.New("no API keys configured")
	}
	if key == "" || !slices.Contains(keys, key) {
		return errors.New("invalid API key")
	}
	return nil
}
