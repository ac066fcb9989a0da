package handlers

import (
	"net/http"

	"github.com/marcodesign21/chaset-tracker/internal/models"
	"github.com/marcodesign21/chaset-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// CredentialRequest is the body of POST /api/credentials.
type CredentialRequest struct {
	UserID   int     `json:"user_id" example:"1"`
	Service  string  `json:"service" example:"GitHub"`
	Email    string  `json:"email" example:"alice@example.com"`
	Password string  `json:"password" example:"hunter2"`
	Notes    *string `json:"notes" example:"work account"`
}

// @Summary      List credentials
// @Description  Newest first. Passwords are returned in plaintext.
// @Tags         credentials
// @Produce      json
// @Param        userId  path      int  true  "User ID"
// @Success      200     {array}   models.Credential
// @Header       200     {string}  X-Vault-Notice  "plaintext storage disclosure"
// @Failure      400     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /api/credentials/{userId} [get]
func (h *Handler) listCredentials(c *gin.Context) {
	userID, ok := h.pathID(c, "userId")
	if !ok {
		return
	}
	creds, err := h.services.ListCredentials(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, "credentials_list_failed", err, "user_id", userID)
		return
	}
	if creds == nil {
		creds = []models.Credential{}
	}
	c.JSON(http.StatusOK, creds)
}

// @Summary      Create credential
// @Description  Stored without hashing or encryption.
// @Tags         credentials
// @Accept       json
// @Produce      json
// @Param        body  body      CredentialRequest  true  "Credential"
// @Success      200   {object}  models.Credential
// @Header       200   {string}  X-Vault-Notice  "plaintext storage disclosure"
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/credentials [post]
func (h *Handler) createCredential(c *gin.Context) {
	var req CredentialRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	cred, err := h.services.CreateCredential(c.Request.Context(), service.CredentialInput{
		UserID:   req.UserID,
		Service:  req.Service,
		Email:    req.Email,
		Password: req.Password,
		Notes:    req.Notes,
	})
	if err != nil {
		// never log the password
		h.writeError(c, "credential_create_failed", err, "user_id", req.UserID, "service", req.Service)
		return
	}
	c.JSON(http.StatusOK, cred)
}

// @Summary      Delete credential
// @Tags         credentials
// @Produce      json
// @Param        id   path      int  true  "Credential ID"
// @Success      200  {object}  deleteResponse
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/credentials/{id} [delete]
func (h *Handler) deleteCredential(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.DeleteCredential(c.Request.Context(), id); err != nil {
		h.writeError(c, "credential_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, deleteResponse{Success: true})
}
