package gallery

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

// GET /api/gallery
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

// GET /api/admin/gallery
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

// POST /api/admin/gallery
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input models.GalleryInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	id, err := h.Service.Create(ctx, input)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	h.Events.Emit(ctx, mq.NewEvent(models.GalleryCollection, mq.ActionCreated, id, nil))
	utils.RespondWithMessage(w, http.StatusCreated, "Фото добавлено", id)
}

// PUT /api/admin/gallery/:id
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := ps.ByName("id")
	var input models.GalleryInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	if err := h.Service.Update(ctx, id, input); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	h.Events.Emit(ctx, mq.NewEvent(models.GalleryCollection, mq.ActionUpdated, id, nil))
	utils.RespondWithMessage(w, http.StatusOK, "Фото обновлено", "")
}

// DELETE /api/admin/gallery/:id
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := ps.ByName("id")
	if err := h.Service.Delete(ctx, id); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	h.Events.Emit(ctx, mq.NewEvent(models.GalleryCollection, mq.ActionDeleted, id, nil))
	utils.RespondWithMessage(w, http.StatusOK, "Фото удалено", "")
}
