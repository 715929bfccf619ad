package handler

import (
	"net/http"
)

type adminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// AdminLogin checks the shared admin password. On success it returns a
// short-lived bearer token for the management endpoints.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, "Password required")
		return
	}

	token, err := h.gate.Login(req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
	})
}
