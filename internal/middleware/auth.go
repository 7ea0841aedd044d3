package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"firetask-backend/internal/firebase"
	"firetask-backend/internal/models"
	"firetask-backend/internal/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthenticatedUser struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserFinder loads the local user linked to a provider account.
type UserFinder interface {
	FindByFirebaseUID(ctx context.Context, uid string) (*models.User, error)
}

// AuthMiddleware authenticates requests with a provider-issued ID token:
// Bearer header, a cheap local screen of the token's claims, then a lookup
// against the provider to confirm the token is still good, and finally the
// local user row the account maps to.
func AuthMiddleware(provider firebase.Client, users UserFinder) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.Failed("Authorization token is required."))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.Failed("Authorization header format must be Bearer {token}."))
			return
		}

		tokenString := parts[1]

		// The provider signs with its own rotating keys, so the signature is
		// checked remotely; locally we only screen the claims to fail fast
		// on garbage or expired tokens.
		token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.Failed("Invalid or expired token."))
			return
		}

		if exp, err := token.Claims.GetExpirationTime(); err != nil || (exp != nil && exp.Before(time.Now())) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.Failed("Invalid or expired token."))
			return
		}

		account, err := provider.LookupAccount(ctx.Request.Context(), tokenString)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.Failed("Invalid or expired token."))
			return
		}

		user, err := users.FindByFirebaseUID(ctx.Request.Context(), account.LocalID)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.Failed("User not found."))
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		})
		ctx.Next()
	}
}
