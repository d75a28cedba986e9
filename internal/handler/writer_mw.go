package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkandpages/blog-service/internal/dto"
	"github.com/inkandpages/blog-service/pkg/utils"
)

// writerMiddleware admits only the configured writer. Any other principal is
// rejected, authenticated or not.
func (h *Handler) writerMiddleware(c *gin.Context) {
	email, ok := h.emailFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	if !h.services.Auth.IsWriter(email) {
		c.JSON(http.StatusForbidden, dto.NewBasicResponse(false, errNoAccess.Error()))
		c.Abort()
		return
	}

	c.Set("writer-email", email)
	c.Set("is-writer", true)

	c.Next()
}

func (h *Handler) emailFromRequest(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}

	accessToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if accessToken == "" {
		return "", false
	}

	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", false
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", false
	}

	return email, true
}
