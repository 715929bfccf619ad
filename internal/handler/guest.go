package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"wedding-site/internal/models"
)

type createGuestRequest struct {
	Username    string        `json:"username" validate:"required"`
	DisplayName string        `json:"displayName" validate:"required"`
	Events      models.Events `json:"events"`
}

// updateGuestRequest is a field-group patch: only groups present in the
// payload are merged, so an admin edit can never wipe a sibling field
// the form did not send.
type updateGuestRequest struct {
	DisplayName         *string        `json:"displayName"`
	Events              *models.Events `json:"events"`
	DietaryRequirements *string        `json:"dietaryRequirements"`
	GiftSelection       *string        `json:"giftSelection"`
	PaymentStatus       *string        `json:"paymentStatus"`
}

// GetGuest looks up one guest by username. This is what the login page
// calls, so the lookup is case-insensitive.
func (h *Handler) GetGuest(w http.ResponseWriter, r *http.Request) {
	guest, err := h.store.FindByUsername(mux.Vars(r)["username"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, guest)
}

// ListGuests returns the full guest list.
func (h *Handler) ListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := h.store.LoadAll()
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, guests)
}

// CreateGuest adds a new guest and echoes the stored record.
func (h *Handler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req createGuestRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, "Username and display name required")
		return
	}
	if !req.Events.Invited() {
		h.badRequest(w, "At least one event must be selected")
		return
	}

	guest := models.Guest{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Events:      req.Events,
	}
	if err := h.store.Insert(guest); err != nil {
		h.respondError(w, r, err)
		return
	}

	stored, err := h.store.FindByUsername(guest.Username)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, stored)
}

// UpdateGuest merges the submitted field groups into an existing guest.
func (h *Handler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	var req updateGuestRequest
	if !h.decode(w, r, &req) {
		return
	}

	updated, err := h.store.Update(mux.Vars(r)["username"], func(g *models.Guest) {
		if req.DisplayName != nil {
			g.DisplayName = *req.DisplayName
		}
		if req.Events != nil {
			g.Events = *req.Events
		}
		if req.DietaryRequirements != nil {
			g.DietaryRequirements = *req.DietaryRequirements
		}
		if req.GiftSelection != nil {
			g.GiftSelection = *req.GiftSelection
		}
		// The payment marker is one-way, even for admins.
		if req.PaymentStatus != nil && *req.PaymentStatus == models.PaymentClicked {
			g.PaymentStatus = models.PaymentClicked
		}
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteGuest removes a guest.
func (h *Handler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Remove(mux.Vars(r)["username"]); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type guestSummary struct {
	TotalGuests int `json:"totalGuests"`
	Ceremony    int `json:"ceremony"`
	Reception   int `json:"reception"`
	Celebration int `json:"celebration"`
}

// GuestSummary returns the per-event invitation counts shown on the
// admin dashboard.
func (h *Handler) GuestSummary(w http.ResponseWriter, r *http.Request) {
	guests, err := h.store.LoadAll()
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	summary := guestSummary{TotalGuests: len(guests)}
	for _, g := range guests {
		if g.Events.Ceremony {
			summary.Ceremony++
		}
		if g.Events.Reception {
			summary.Reception++
		}
		if g.Events.Celebration {
			summary.Celebration++
		}
	}
	h.respondJSON(w, http.StatusOK, summary)
}
