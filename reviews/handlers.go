package reviews

import (
	"context"
	"net/http"
	"time"

	"alpacafarm/models"
	"alpacafarm/mq"
	"alpacafarm/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	Service *Service
	Events  mq.Emitter
}

// GET /api/reviews
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	reviews, err := h.Service.ListApproved(ctx)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, reviews)
}

// POST /api/reviews
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input models.ReviewInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	id, err := h.Service.Submit(ctx, input)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	h.Events.Emit(ctx, mq.NewEvent(models.ReviewsCollection, mq.ActionCreated, id, nil))
	utils.RespondWithMessage(w, http.StatusCreated, "Отзыв отправлен на модерацию", id)
}

// GET /api/admin/reviews/pending
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	reviews, err := h.Service.ListPending(ctx)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, reviews)
}

// PUT /api/admin/reviews/:id/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := ps.ByName("id")
	if err := h.Service.Approve(ctx, id); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	h.Events.Emit(ctx, mq.NewEvent(models.ReviewsCollection, mq.ActionUpdated, id, nil))
	utils.RespondWithMessage(w, http.StatusOK, "Отзыв одобрен", "")
}

// DELETE /api/admin/reviews/:id
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := ps.ByName("id")
	if err := h.Service.Delete(ctx, id); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	h.Events.Emit(ctx, mq.NewEvent(models.ReviewsCollection, mq.ActionDeleted, id, nil))
	utils.RespondWithMessage(w, http.StatusOK, "Отзыв удален", "")
}
