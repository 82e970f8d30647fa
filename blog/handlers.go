package blog

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

// GET /api/blog/posts
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.Service.ListPublished(ctx)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

// GET /api/blog/posts/:slug
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

// GET /api/admin/blog/posts
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

// POST /api/admin/blog/posts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input models.BlogPostInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	id, err := h.Service.Create(ctx, input)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	h.Events.Emit(ctx, mq.NewEvent(models.BlogCollection, mq.ActionCreated, id, nil))
	utils.RespondWithMessage(w, http.StatusCreated, "Статья создана", id)
}

// PUT /api/admin/blog/posts/:id
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := ps.ByName("id")
	var input models.BlogPostInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	if err := h.Service.Update(ctx, id, input); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	h.Events.Emit(ctx, mq.NewEvent(models.BlogCollection, mq.ActionUpdated, id, nil))
	utils.RespondWithMessage(w, http.StatusOK, "Статья обновлена", "")
}

// DELETE /api/admin/blog/posts/:id
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := ps.ByName("id")
	if err := h.Service.Delete(ctx, id); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	h.Events.Emit(ctx, mq.NewEvent(models.BlogCollection, mq.ActionDeleted, id, nil))
	utils.RespondWithMessage(w, http.StatusOK, "Статья удалена", "")
}
