package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Sooraj-Rao/quiz-builder/config"
	"github.com/Sooraj-Rao/quiz-builder/internal/auth"
	"github.com/Sooraj-Rao/quiz-builder/internal/dto"
)

// AuthRequired validates the bearer token and places its claims in the
// request context.
func AuthRequired(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "No token provided"})
			return
		}

		claims, err := auth.ParseToken(tokenString, cfg.JWT.Secret)
		if err != nil {
			log.Debug().Err(err).Msg("Rejected bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid token"})
			return
		}

		auth.IntoContext(c, claims)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired; rejects non-admin claims.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.FromContext(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "No token provided"})
			return
		}
		if !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Admin access required"})
			return
		}
		c.Next()
	}
}
