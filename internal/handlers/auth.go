package handlers

import (
	"net/http"

	"github.com/marcodesign21/chaset-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	msgAccountCreated = "account created"

	loginCreated = "created"
	loginOK      = "ok"
	loginDenied  = "denied"
	loginFailed  = "error"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"pw1"`
}

// LoginResponse carries the session user; Message is set only on registration.
type LoginResponse struct {
	Success bool               `json:"success" example:"true"`
	User    models.SessionUser `json:"user"`
	Message string             `json:"message,omitempty" example:"account created"`
}

// @Summary      Log in or register
// @Description  Unseen usernames are registered; existing ones must match the stored password.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest   true  "Credentials"
// @Success      200   {object}  LoginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	res, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if code, _ := statusFor(err); code == http.StatusUnauthorized {
			h.metrics.login(loginDenied)
		} else {
			h.metrics.login(loginFailed)
		}
		h.writeError(c, "auth_login_failed", err, "username", input.Username)
		return
	}

	resp := LoginResponse{Success: true, User: res.User}
	if res.Created {
		resp.Message = msgAccountCreated
		h.metrics.login(loginCreated)
		h.log.Infow("auth_user_registered", "user_id", res.User.ID, "username", res.User.Username)
	} else {
		h.metrics.login(loginOK)
	}
	c.JSON(http.StatusOK, resp)
}
