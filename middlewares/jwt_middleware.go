package middlewares

import (
	"context"
	"net/http"
	"strings"

	"stratplan/models"
	"stratplan/utils"

	"github.com/golang-jwt/jwt/v5"
)

// Claims bind the actor's identity into the signed credential. The
// token is self-contained: no session state is kept server-side.
type Claims struct {
	UserID     string      `json:"user_id"`
	Role       models.Role `json:"role"`
	Department string      `json:"department"`
	jwt.RegisteredClaims
}

type contextKey string

const ActorContextKey contextKey = "actor"

// JWTMiddleware authenticates requests. Expired and malformed tokens
// are both 401: a bad credential is never treated as "forbidden".
func JWTMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.HandleMessageResponse(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				utils.HandleMessageResponse(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			})

			if err != nil {
				utils.HandleMessageResponse(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(*Claims)
			if !ok || !token.Valid || claims.UserID == "" {
				utils.HandleMessageResponse(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}

			actor := models.Actor{
				ID:         claims.UserID,
				Role:       claims.Role,
				Department: claims.Department,
			}
			ctx := context.WithValue(r.Context(), ActorContextKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetActorFromContext(ctx context.Context) models.Actor {
	if actor, ok := ctx.Value(ActorContextKey).(models.Actor); ok {
		return actor
	}
	return models.Actor{}
}
