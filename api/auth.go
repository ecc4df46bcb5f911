package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// contextKeyAddress holds the account a bearer token was issued to.
	contextKeyAddress = "auth_address"

	tokenIssuer = "dexd"
)

// Claims are the JWT claims of an account token. The subject is the bech32
// account address the token speaks for.
type Claims struct {
	jwt.RegisteredClaims
}

// AuthService issues and checks HMAC signed account tokens.
type AuthService struct {
	secret []byte
}

// NewAuthService creates an AuthService signing with secret.
func NewAuthService(secret []byte) *AuthService {
	return &AuthService{secret: secret}
}

// GenerateToken issues a token for addr valid for ttl.
func (as *AuthService) GenerateToken(addr sdk.AccAddress, ttl time.Duration) (string, error) {
	if addr.Empty() {
		return "", errors.New("empty address")
	}
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   addr.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(as.secret)
}

// ValidateToken verifies tokenString and returns the account it was issued to.
func (as *AuthService) ValidateToken(tokenString string) (sdk.AccAddress, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return as.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	addr, err := sdk.AccAddressFromBech32(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("token subject: %w", err)
	}
	return addr, nil
}

// AuthMiddleware requires a valid bearer token and records its account. A
// nil service lets every request through.
func AuthMiddleware(as *AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if as == nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Missing bearer token",
				Code:  "UNAUTHORIZED",
			})
			return
		}

		addr, err := as.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "Invalid token",
				Code:    "UNAUTHORIZED",
				Details: err.Error(),
			})
			return
		}

		c.Set(contextKeyAddress, addr)
		c.Next()
	}
}

// senderAddress parses the request's sender. When the request carried a
// token, the sender must be the token's account.
func (s *Server) senderAddress(c *gin.Context, sender string) (sdk.AccAddress, bool) {
	addr, err := parseAddress("sender", sender)
	if err != nil {
		badRequest(c, "Invalid sender address", err)
		return nil, false
	}
	if v, ok := c.Get(contextKeyAddress); ok {
		if authed, _ := v.(sdk.AccAddress); !authed.Equals(addr) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Error: "Sender does not match the authenticated account",
				Code:  "FORBIDDEN",
			})
			return nil, false
		}
	}
	return addr, true
}
