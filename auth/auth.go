package auth

import (
	"context"
	"net/http"
	"time"

	"alpacafarm/domain"
	"alpacafarm/models"
	"alpacafarm/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	Gate *Gate
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresAt   time.Time       `json:"expires_at"`
	User        models.UserView `json:"user"`
}

// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input models.LoginInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	if err := domain.Validate(input); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	user, err := h.Gate.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	token, exp, err := h.Gate.IssueToken(user)
	if err != nil {
		utils.RespondWithDomainError(w, domain.InternalError{Msg: "failed to generate token", Err: err})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   exp,
		User:        user.View(),
	})
}

// GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, ok := utils.IdentityFromRequest(r)
	if !ok {
		utils.RespondWithDomainError(w, domain.UnauthorizedError{})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user.View())
}
