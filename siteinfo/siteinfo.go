package siteinfo

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"alpacafarm/db"
	"alpacafarm/domain"
	"alpacafarm/models"
	"alpacafarm/utils"

	"github.com/julienschmidt/httprouter"
)

type Service struct {
	Store db.Store
}

func NewService(store db.Store) *Service {
	return &Service{Store: store}
}

// Get returns the first site info document, persisting the defaults when the
// collection is empty. Two concurrent first reads may both insert; the first
// document found wins from then on.
func (s *Service) Get(ctx context.Context) (models.SiteInfoView, error) {
	var info models.SiteInfo
	err := s.Store.FindOne(ctx, models.SiteInfoCollection, nil, &info)
	if err == nil {
		return info.View(), nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return models.SiteInfoView{}, domain.InternalError{Msg: "failed to load site info", Err: err}
	}

	info = models.DefaultSiteInfo()
	if _, err := s.Store.Insert(ctx, models.SiteInfoCollection, &info); err != nil {
		return models.SiteInfoView{}, domain.InternalError{Msg: "failed to create site info", Err: err}
	}
	log.Println("[SiteInfo] created default site info")
	return info.View(), nil
}

type Handler struct {
	Service *Service
}

// GET /api/site-info
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	info, err := h.Service.Get(ctx)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, info)
}
