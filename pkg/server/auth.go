package server

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
)

const tokenCookieName = "sb-admin"

// AdminAuth guards mutating endpoints with either a static API key in
// the Authorization header or a signed HS256 token cookie.
type AdminAuth struct {
	serverKey []byte
	apiKey    string
}

func NewAdminAuth(tokenHash, apiKey string) *AdminAuth {
	return &AdminAuth{serverKey: []byte(tokenHash), apiKey: apiKey}
}

func (a *AdminAuth) CreateToken(username, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"username": username,
			"role":     role,
			"exp":      time.Now().Add(time.Hour * 24).Unix(),
		})
	return token.SignedString(a.serverKey)
}

func (a *AdminAuth) parseJwt(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return a.serverKey, nil
	})
}

func (a *AdminAuth) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if a.apiKey != "" && auth == a.apiKey {
			next.ServeHTTP(w, r)
			return
		}
		cookie, err := r.Cookie(tokenCookieName)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		token, err := a.parseJwt(cookie.Value)
		if err != nil || !token.Valid {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if role, _ := claims["role"].(string); role != "admin" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}
}
