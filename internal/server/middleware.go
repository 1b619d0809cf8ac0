package server

import (
	"net/http"
	"strings"

	"tictactoe-replay/internal/api/response"

	"github.com/gin-gonic/gin"
)

// authRequired verifies the Bearer token and stores the username on the
// context for downstream handlers.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.ErrorResponse(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}

		username, err := s.playerService.VerifyToken(token)
		if err != nil {
			response.ErrorResponse(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Set("username", username)
		c.Next()
	}
}
