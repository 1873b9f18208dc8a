package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pmn-sn/datahub/internal/datahub/service"
	"github.com/pmn-sn/datahub/pkg/httpx"
	"github.com/pmn-sn/datahub/pkg/slogx"
)

type RegisterHandler struct {
	AccountService *service.AccountService
}

type registerRequest struct {
	ChambreName     string `json:"chambreName"`
	Region          string `json:"region"`
	Departement     string `json:"departement"`
	Nom             string `json:"nom"`
	Prenom          string `json:"prenom"`
	Fonction        string `json:"fonction"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ServeHTTP godoc
//
//	@Summary		Chambre de Métiers Registration
//	@Description	Self-registration for a Chambre de Métiers account. The account is created
//	@Description	in pending status and stays locked out until an administrator activates it.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"Registration form"
//	@Success		201		{object}	MessageResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		409		{object}	httpx.ErrorBody
//	@Router			/api/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidRequest, "")
		return
	}

	err := h.AccountService.Register(ctx, service.RegisterRequest{
		ChambreName:     req.ChambreName,
		Region:          req.Region,
		Departement:     req.Departement,
		Nom:             req.Nom,
		Prenom:          req.Prenom,
		Fonction:        req.Fonction,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusCreated, MessageResponse{Message: msgRegistered})
	case errors.Is(err, service.ErrMissingFields):
		httpx.WriteError(w, http.StatusBadRequest, msgMissingFields, "")
	case errors.Is(err, service.ErrPasswordMismatch):
		httpx.WriteError(w, http.StatusBadRequest, msgPasswordMismatch, "")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, msgEmailTaken, "")
	default:
		log.Error("registration failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgServerError, err.Error())
	}
}

type LoginHandler struct {
	AccountService *service.AccountService
	// AdminLogin restricts the endpoint to admin-class roles.
	AdminLogin bool
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Validates credentials and returns a session token. Pending accounts are
//	@Description	refused. The admin variant additionally refuses non-admin roles.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	LoginResponse
//	@Failure		401		{object}	httpx.ErrorBody
//	@Failure		403		{object}	httpx.ErrorBody
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidRequest, "")
		return
	}

	sess, err := h.AccountService.Authenticate(ctx, service.Credentials{
		Email:    req.Email,
		Password: req.Password,
	}, h.AdminLogin)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, LoginResponse{User: sess, Token: sess.Token})
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, msgInvalidLogin, "")
	case errors.Is(err, service.ErrAccountPending):
		httpx.WriteError(w, http.StatusForbidden, msgAccountPending, "")
	case errors.Is(err, service.ErrAdminAccessDenied):
		httpx.WriteError(w, http.StatusForbidden, msgAdminOnly, "")
	default:
		log.Error("login failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgServerError, err.Error())
	}
}
