package handlers

import (
	"errors"
	"net/http"

	"controle_frete/internal/services"

	"github.com/gin-gonic/gin"
)

// SessionTokenHeader carries the opaque portal session token on every
// authenticated call.
const SessionTokenHeader = "X-Session-Token"

// Authenticate gates the API behind the portal session check. The root and
// health routes are registered outside the gated group and stay public.
func Authenticate(sessions services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionTokenHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Não autenticado",
				"message": "Token de sessão não encontrado",
			})
			return
		}

		session, err := sessions.Verify(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":   "Sessão inválida",
					"message": "Sua sessão expirou",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "Erro interno",
				"message": "Erro ao verificar autenticação",
			})
			return
		}

		c.Set("session", session)
		c.Next()
	}
}
