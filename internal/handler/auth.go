package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkandpages/blog-service/internal/dto"
	"github.com/inkandpages/blog-service/internal/service"
)

func (h *Handler) authLogin(c *gin.Context) {
	var input dto.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	token, err := h.services.Auth.SignIn(input.Email, input.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}
