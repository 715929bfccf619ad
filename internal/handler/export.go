package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"wedding-site/internal/config"
	"wedding-site/internal/export"
	"wedding-site/internal/storage"
)

// ExportCSV streams the guest list as an Excel-compatible CSV.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	guests, err := h.store.LoadAll()
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	// Render into a buffer first so a generation failure can still
	// produce a clean 500 instead of a half-written download.
	var buf bytes.Buffer
	if err := export.WriteGuestCSV(&buf, guests); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="wedding-guests.csv"`)
	_, _ = w.Write(buf.Bytes())
}

// ExportDietaryPDF streams the dietary requirements report.
func (h *Handler) ExportDietaryPDF(w http.ResponseWriter, r *http.Request) {
	guests, err := h.store.LoadAll()
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteDietaryPDF(&buf, guests, h.documentInfo()); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="dietary-requirements.pdf"`)
	_, _ = w.Write(buf.Bytes())
}

// ExportEventDetailsPDF streams the personalized event-details document
// for one guest.
func (h *Handler) ExportEventDetailsPDF(w http.ResponseWriter, r *http.Request) {
	guest, err := h.store.FindByUsername(mux.Vars(r)["username"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteEventDetailsPDF(&buf, guest, h.eventCatalog(), h.documentInfo()); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="event-details-%s.pdf"`, storage.NormalizeUsername(guest.Username)))
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) documentInfo() export.DocumentInfo {
	return export.DocumentInfo{
		Footer: h.cfg.WeddingTitle + " - " + h.cfg.WeddingDates,
	}
}

func (h *Handler) eventCatalog() export.EventCatalog {
	return export.EventCatalog{
		Ceremony:    eventSection(h.cfg.Ceremony),
		Reception:   eventSection(h.cfg.Reception),
		Celebration: eventSection(h.cfg.Celebration),
	}
}

func eventSection(info config.EventInfo) export.EventSection {
	return export.EventSection{
		Title:       info.Title,
		Date:        info.Date,
		Venue:       info.Venue,
		Description: info.Description,
	}
}
