package handler

import (
	"net/http"

	"wedding-site/internal/models"
)

type dietaryRequest struct {
	Username            string `json:"username" validate:"required"`
	DietaryRequirements string `json:"dietaryRequirements"`
}

type giftSelectionRequest struct {
	Username      string `json:"username" validate:"required"`
	GiftSelection string `json:"giftSelection" validate:"required"`
}

type paymentClickRequest struct {
	Username string `json:"username" validate:"required"`
}

// SubmitDietary stores a guest's dietary requirements. An empty string
// clears them.
func (h *Handler) SubmitDietary(w http.ResponseWriter, r *http.Request) {
	var req dietaryRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, "Username required")
		return
	}

	_, err := h.store.Update(req.Username, func(g *models.Guest) {
		g.DietaryRequirements = req.DietaryRequirements
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Dietary requirements saved",
	})
}

// SubmitGiftSelection records a guest's gift choice. The submitted gift
// code is translated to its display label through the configured
// catalog; unknown codes are rejected.
func (h *Handler) SubmitGiftSelection(w http.ResponseWriter, r *http.Request) {
	var req giftSelectionRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, "Username and gift selection required")
		return
	}

	label, ok := h.cfg.GiftOptions[req.GiftSelection]
	if !ok {
		h.badRequest(w, "Unknown gift option")
		return
	}

	_, err := h.store.Update(req.Username, func(g *models.Guest) {
		g.GiftSelection = label
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RecordPaymentClick sets the one-way payment marker. Repeated clicks
// are fine.
func (h *Handler) RecordPaymentClick(w http.ResponseWriter, r *http.Request) {
	var req paymentClickRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, "Username required")
		return
	}

	_, err := h.store.Update(req.Username, func(g *models.Guest) {
		g.PaymentStatus = models.PaymentClicked
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ReceiveRSVP acknowledges an RSVP form submission. The payload is
// logged, not stored; the guest record itself is updated through the
// other endpoints.
func (h *Handler) ReceiveRSVP(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if !h.decode(w, r, &payload) {
		return
	}
	h.log.Info().Interface("rsvp", payload).Msg("rsvp received")
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "RSVP received",
	})
}
