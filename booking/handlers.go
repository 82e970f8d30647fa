package booking

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"alpacafarm/models"
	"alpacafarm/mq"
	"alpacafarm/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	Service  *Service
	Events   mq.Emitter
	Exporter Exporter
	Now      func() time.Time
}

// POST /api/bookings
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input models.BookingInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	b, err := h.Service.Submit(ctx, input)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	log.Printf("[Booking] new request %s from %s", b.ID, utils.ClientIP(r))
	h.Events.Emit(ctx, mq.NewEvent(models.BookingsCollection, mq.ActionCreated, b.ID, b.View()))
	utils.RespondWithMessage(w, http.StatusCreated, "Заявка успешно отправлена! Мы свяжемся с вами в ближайшее время.", b.ID)
}

// GET /api/admin/bookings?status=
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := models.BookingStatus(r.URL.Query().Get("status"))
	items, err := h.Service.List(ctx, status)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

// PUT /api/admin/bookings/:id/status
//
// Accepts a JSON body or the status and admin_notes query parameters.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := ps.ByName("id")
	var input models.BookingStatusInput
	if q := r.URL.Query(); q.Has("status") {
		input.Status = models.BookingStatus(q.Get("status"))
		input.AdminNotes = q.Get("admin_notes")
	} else if err := utils.DecodeJSON(r, &input); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	if err := h.Service.UpdateStatus(ctx, id, input); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	log.Printf("[Booking] %s set to %s by user %s", id, input.Status, utils.GetUserIDFromRequest(r))
	h.Events.Emit(ctx, mq.NewEvent(models.BookingsCollection, mq.ActionUpdated, id, input))
	utils.RespondWithMessage(w, http.StatusOK, "Статус заявки обновлен", "")
}

// GET /api/admin/bookings/export.pdf?status=
func (h *Handler) Export(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	status := models.BookingStatus(r.URL.Query().Get("status"))
	items, err := h.Service.List(ctx, status)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	data, err := h.Exporter.Render(items, now())
	if err != nil {
		log.Printf("[Booking] export failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to build export")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GET /api/admin/booking-slips/:id
func (h *Handler) Slip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := h.Service.Get(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	data, err := h.Exporter.Slip(b)
	if err != nil {
		log.Printf("[Booking] slip for %s failed: %v", b.ID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to build slip")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="booking-`+b.ID+`.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
