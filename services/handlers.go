package services

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

// GET /api/services
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.Service.ListActive(ctx)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

// GET /api/services/:slug
func (h *Handler) BySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.Service.BySlug(ctx, ps.ByName("slug"))
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, item)
}

// GET /api/admin/services
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.Service.ListAll(ctx)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

// POST /api/admin/services
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input models.ServiceInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	id, err := h.Service.Create(ctx, input)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	h.Events.Emit(ctx, mq.NewEvent(models.ServicesCollection, mq.ActionCreated, id, nil))
	utils.RespondWithMessage(w, http.StatusCreated, "Услуга создана", id)
}

// PUT /api/admin/services/:id
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := ps.ByName("id")
	var input models.ServiceInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	if err := h.Service.Update(ctx, id, input); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	h.Events.Emit(ctx, mq.NewEvent(models.ServicesCollection, mq.ActionUpdated, id, nil))
	utils.RespondWithMessage(w, http.StatusOK, "Услуга обновлена", "")
}

// DELETE /api/admin/services/:id
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := ps.ByName("id")
	if err := h.Service.Delete(ctx, id); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	h.Events.Emit(ctx, mq.NewEvent(models.ServicesCollection, mq.ActionDeleted, id, nil))
	utils.RespondWithMessage(w, http.StatusOK, "Услуга удалена", "")
}
