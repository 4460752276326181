package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenpass/greenpass-support/internal/models"
	"github.com/greenpass/greenpass-support/internal/utils"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

// requireUser reads the identity set by the JWT middleware.
func requireUser(c *gin.Context) (models.User, bool) {
	var u models.User

	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok {
			u.ID = s
		}
	}
	if v, ok := c.Get("role"); ok {
		if s, ok := v.(string); ok {
			u.Role = models.ParseRole(s)
		}
	}
	if v, ok := c.Get("email"); ok {
		if s, ok := v.(string); ok {
			u.Email = s
		}
	}

	if u.ID == "" {
		writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
		return models.User{}, false
	}
	return u, true
}
