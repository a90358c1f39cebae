package authentication

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"

	"tutoria-backend/models/users"
)

// jwtKey reads the signing secret at call time so values loaded from .env
// by main are picked up.
func jwtKey() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

const tokenTTL = 24 * time.Hour

type Claims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// GenerateToken issues the signed bearer token returned by login/register.
func GenerateToken(user *users.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// ValidateToken parses the Authorization header and returns the claims.
func ValidateToken(r *http.Request) (*Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("authorization header required")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// RequireRole validates the token and checks the caller has the given role.
// It writes the error response itself and returns nil when the caller may
// not proceed.
func RequireRole(w http.ResponseWriter, r *http.Request, role string) *Claims {
	claims, err := ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}
	if claims.Role != role {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil
	}
	return claims
}
