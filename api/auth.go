package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// AdminPermission is the claim value every mutating route requires.
const AdminPermission = "admin:all"

const claimsContextKey = "claims"

// TokenClaims is the verified payload of an access token.
type TokenClaims struct {
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// HasPermission reports whether the claims carry the given permission.
func (c *TokenClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// TokenVerifier validates RS256 bearer tokens against a remote JWKS
// endpoint. Signing keys are cached and refreshed in the background by
// the keyfunc storage.
type TokenVerifier struct {
	keys     keyfunc.Keyfunc
	issuer   string
	audience string
}

// NewTokenVerifier fetches the key set from jwksURL and returns a
// verifier pinned to the given issuer and audience.
func NewTokenVerifier(ctx context.Context, jwksURL, issuer, audience string) (*TokenVerifier, error) {
	keys, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}

	return &TokenVerifier{
		keys:     keys,
		issuer:   issuer,
		audience: audience,
	}, nil
}

// NewAuth0TokenVerifier builds a verifier for an Auth0 tenant from its
// domain and API audience.
func NewAuth0TokenVerifier(ctx context.Context, domain, audience string) (*TokenVerifier, error) {
	jwksURL := fmt.Sprintf("https://%s/.well-known/jwks.json", domain)
	issuer := fmt.Sprintf("https://%s/", domain)
	return NewTokenVerifier(ctx, jwksURL, issuer, audience)
}

// Verify checks the token signature, expiry, issuer and audience and
// returns its claims.
func (v *TokenVerifier) Verify(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, v.keys.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// checkToken extracts and verifies the bearer token and stores its
// claims in the request context. Failures end the request with 401.
func (s *Server) checkToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		abortWithEncoding(c, http.StatusUnauthorized, errorAuthenticationFailed)
		return
	}

	claims, err := s.verifier.Verify(parts[1])
	if err != nil {
		log.WithFields(logrus.Fields{
			"path":  c.Request.URL.Path,
			"error": err,
		}).Warn("token verification fail")
		abortWithEncoding(c, http.StatusUnauthorized, errorAuthenticationFailed, err)
		return
	}

	c.Set(claimsContextKey, claims)
	c.Next()
}

// checkAdmin gates admin-only routes. It must run after checkToken.
func (s *Server) checkAdmin(c *gin.Context) {
	claims, ok := c.MustGet(claimsContextKey).(*TokenClaims)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	if !claims.HasPermission(AdminPermission) {
		abortWithEncoding(c, http.StatusForbidden, errorInsufficientProfile)
		return
	}
	c.Next()
}
