package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"wedding-site/internal/auth"
	"wedding-site/internal/config"
	"wedding-site/internal/storage"
)

// Handler serves the guest and admin API plus the static site.
type Handler struct {
	store    *storage.Storage
	gate     *auth.Gate
	cfg      *config.Config
	validate *validator.Validate
	log      zerolog.Logger
}

// New creates the handler with its collaborators.
func New(store *storage.Storage, gate *auth.Gate, cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{
		store:    store,
		gate:     gate,
		cfg:      cfg,
		validate: validator.New(),
		log:      log,
	}
}

// Router builds the full route table. Management endpoints sit behind
// the admin gate; everything the guest pages call is open.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.logRequests)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/guest/{username}", h.GetGuest).Methods(http.MethodGet)
	api.HandleFunc("/guest/{username}/event-details.pdf", h.ExportEventDetailsPDF).Methods(http.MethodGet)
	api.HandleFunc("/dietary", h.SubmitDietary).Methods(http.MethodPost)
	api.HandleFunc("/gift-selection", h.SubmitGiftSelection).Methods(http.MethodPost)
	api.HandleFunc("/payment-click", h.RecordPaymentClick).Methods(http.MethodPost)
	api.HandleFunc("/rsvp", h.ReceiveRSVP).Methods(http.MethodPost)
	api.HandleFunc("/admin/login", h.AdminLogin).Methods(http.MethodPost)
	api.Handle("/dietary/export-pdf",
		h.gate.Middleware(http.HandlerFunc(h.ExportDietaryPDF))).Methods(http.MethodGet)

	admin := api.PathPrefix("/guests").Subrouter()
	admin.Use(h.gate.Middleware)
	admin.HandleFunc("", h.ListGuests).Methods(http.MethodGet)
	admin.HandleFunc("", h.CreateGuest).Methods(http.MethodPost)
	admin.HandleFunc("/summary", h.GuestSummary).Methods(http.MethodGet)
	admin.HandleFunc("/export-excel", h.ExportCSV).Methods(http.MethodGet)
	admin.HandleFunc("/{username}", h.UpdateGuest).Methods(http.MethodPut)
	admin.HandleFunc("/{username}", h.DeleteGuest).Methods(http.MethodDelete)

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(h.cfg.PublicDir)))
	return r
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("failed to write response")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps business errors to their statuses and hides
// everything unexpected behind a generic 500.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		h.respondJSON(w, http.StatusNotFound, errorResponse{Error: "Guest not found"})
	case errors.Is(err, storage.ErrConflict):
		h.respondJSON(w, http.StatusConflict, errorResponse{Error: "Username already exists"})
	case errors.Is(err, auth.ErrBadCredentials):
		h.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Incorrect password"})
	default:
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		h.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.badRequest(w, "Invalid request format")
		return false
	}
	return true
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Msg("request")
	})
}
