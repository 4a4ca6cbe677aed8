package services

import (
	"crypto/rsa"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Both verifiers accept the same fixed clock skew.
const verifierLeeway = 30 * time.Second

// Claims is the decoded payload of a verified bearer token. It lives for one
// request and is never persisted.
type Claims struct {
	Subject string
	UserID  string
	UID     string
	Email   string
	Issuer  string
}

// TokenVerifier validates a raw bearer token against one static trust
// configuration. Implementations fail closed: on any signature, issuer,
// audience or expiry mismatch they return an error and no claims.
type TokenVerifier interface {
	Verify(tokenString string) (*Claims, error)
}

type localVerifier struct {
	secret   []byte
	issuer   string
	audience string
}

// NewLocalVerifier validates HS256 tokens issued by this service.
func NewLocalVerifier(secret, issuer, audience string) (TokenVerifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("jwt secret key is required")
	}
	return &localVerifier{secret: []byte(secret), issuer: issuer, audience: audience}, nil
}

func (v *localVerifier) Verify(tokenString string) (*Claims, error) {
	return verifyToken(tokenString, []string{"HS256"}, v.issuer, v.audience, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
}

type externalVerifier struct {
	publicKey *rsa.PublicKey
	issuer    string
	audience  string
}

// NewExternalVerifier validates RS256 tokens signed by a third-party issuer
// whose public key is supplied as PEM.
func NewExternalVerifier(publicKeyPEM, issuer, audience string) (TokenVerifier, error) {
	if strings.TrimSpace(publicKeyPEM) == "" {
		return nil, fmt.Errorf("external public key is required")
	}
	pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("parse external public key: %w", err)
	}
	return &externalVerifier{publicKey: pub, issuer: issuer, audience: audience}, nil
}

func (v *externalVerifier) Verify(tokenString string) (*Claims, error) {
	return verifyToken(tokenString, []string{"RS256"}, v.issuer, v.audience, func(t *jwt.Token) (any, error) {
		return v.publicKey, nil
	})
}

func verifyToken(tokenString string, methods []string, issuer, audience string, keyFunc jwt.Keyfunc) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, fmt.Errorf("token is empty")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods(methods),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithLeeway(verifierLeeway),
		jwt.WithExpirationRequired(),
	)

	claims := jwt.MapClaims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, keyFunc)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if tok == nil || !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claimsFromMap(claims), nil
}

func claimsFromMap(c jwt.MapClaims) *Claims {
	out := &Claims{}
	if s, _ := c["sub"].(string); s != "" {
		out.Subject = s
	}
	if s, _ := c["user_id"].(string); s != "" {
		out.UserID = s
	}
	if s, _ := c["uid"].(string); s != "" {
		out.UID = s
	}
	if s, _ := c["email"].(string); s != "" {
		out.Email = s
	}
	if s, _ := c["iss"].(string); s != "" {
		out.Issuer = s
	}
	return out
}
