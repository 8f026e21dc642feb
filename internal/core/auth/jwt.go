package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWTService struct {
	secretKey           string
	accessTokenDuration time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey string) *JWTService {
	return &JWTService{
		secretKey:           secretKey,
		accessTokenDuration: 15 * time.Minute, // Short-lived access token
	}
}

// GenerateAccessToken signs an access token for the given claims.
// Used by the login service and by tests.
func (s *JWTService) GenerateAccessToken(claims *TokenClaims) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(s.accessTokenDuration)

	jwtClaims := jwt.MapClaims{
		"user_id":     claims.UserID,
		"email":       claims.Email,
		"role":        claims.Role,
		"client_name": claims.ClientName,
		"category":    claims.Category,
		"exp":         expiresAt.Unix(),
		"iat":         now.Unix(),
		"nbf":         now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, int64(s.accessTokenDuration.Seconds()), nil
}

// ValidateAccessToken validates an access token and returns claims
func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	// Refresh tokens carry a type claim and are not accepted here
	if tokenType, _ := claims["type"].(string); tokenType != "" {
		return nil, fmt.Errorf("not an access token")
	}

	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	clientName, _ := claims["client_name"].(string)
	category, _ := claims["category"].(string)

	return &TokenClaims{
		UserID:     userID,
		Email:      email,
		Role:       role,
		ClientName: clientName,
		Category:   category,
	}, nil
}
