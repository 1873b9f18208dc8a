package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pmn-sn/datahub/internal/datahub/domain"
	"github.com/pmn-sn/datahub/internal/datahub/service"
	"github.com/pmn-sn/datahub/internal/datahub/store"
	"github.com/pmn-sn/datahub/pkg/httpx"
	"github.com/pmn-sn/datahub/pkg/slogx"
)

type AdminStatsHandler struct {
	AdminService *service.AdminService
}

// ServeHTTP godoc
//
//	@Summary		Dashboard Statistics
//	@Description	Aggregate account counters for the admin dashboard: total accounts, accounts
//	@Description	awaiting validation, and accounts active within the online window.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	service.AdminStats
//	@Failure		401	{object}	httpx.ErrorBody
//	@Failure		403	{object}	httpx.ErrorBody
//	@Security		BearerAuth
//	@Router			/api/admin/stats [get].
func (h *AdminStatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.AdminService.Stats(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("stats lookup failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgServerError, err.Error())
		return
	}

	httpx.WriteJSON(w, http.StatusOK, stats)
}

type AdminUsersHandler struct {
	AdminService *service.AdminService
}

// userView strips the password hash from an account before serialization.
type userView struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	Status      string  `json:"status"`
	Nom         string  `json:"nom"`
	Prenom      string  `json:"prenom"`
	Fonction    string  `json:"fonction,omitempty"`
	ChambreName string  `json:"chambreName,omitempty"`
	Region      string  `json:"region,omitempty"`
	Departement string  `json:"departement,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	LastActive  *string `json:"lastActiveAt,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

func toUserViews(users []domain.UserAccount) []userView {
	out := make([]userView, 0, len(users))
	for _, u := range users {
		v := userView{
			ID:          u.ID,
			Email:       u.Email,
			Role:        u.Role,
			Status:      u.Status,
			Nom:         u.Nom,
			Prenom:      u.Prenom,
			Fonction:    u.Fonction,
			ChambreName: u.ChambreName,
			Region:      u.Region,
			Departement: u.Departement,
			Phone:       u.Phone,
			CreatedAt:   u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if u.LastActiveAt != nil {
			ts := u.LastActiveAt.Format("2006-01-02T15:04:05Z07:00")
			v.LastActive = &ts
		}
		out = append(out, v)
	}
	return out
}

// ServeHTTP godoc
//
//	@Summary		Account Listing
//	@Description	Lists accounts for the admin dashboard, newest first. The filter selects all,
//	@Description	pending, active (meaning validated at least once, refused included) or online
//	@Description	accounts.
//	@Tags			Admin
//	@Produce		json
//	@Param			filter	query		string	false	"all | pending | active | online (default all)"
//	@Success		200		{array}		userView
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		401		{object}	httpx.ErrorBody
//	@Failure		403		{object}	httpx.ErrorBody
//	@Security		BearerAuth
//	@Router			/api/admin/users [get].
func (h *AdminUsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := store.UserListFilter(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = store.UserFilterAll
	}
	switch filter {
	case store.UserFilterAll, store.UserFilterPending, store.UserFilterActive, store.UserFilterOnline:
	default:
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidRequest, "unknown filter")
		return
	}

	users, err := h.AdminService.ListUsers(ctx, filter)
	if err != nil {
		slogx.FromContext(ctx).Error("user listing failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgServerError, err.Error())
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserViews(users))
}

type AdminAdminsHandler struct {
	AdminService *service.AdminService
}

// HandleList godoc
//
//	@Summary		Admin Account Listing
//	@Description	Lists admin and super_admin accounts, newest first.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{array}		userView
//	@Failure		401	{object}	httpx.ErrorBody
//	@Failure		403	{object}	httpx.ErrorBody
//	@Security		BearerAuth
//	@Router			/api/admin/admins [get].
func (h *AdminAdminsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	admins, err := h.AdminService.ListAdmins(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("admin listing failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgServerError, err.Error())
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserViews(admins))
}

type createAdminRequest struct {
	Email    string `json:"email"`
	Nom      string `json:"nom"`
	Prenom   string `json:"prenom"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// HandleCreate godoc
//
//	@Summary		Admin Account Creation
//	@Description	Creates an admin or super_admin account, active immediately. When no password
//	@Description	is supplied one is generated and echoed back once in the response.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			body	body		createAdminRequest	true	"New admin account"
//	@Success		201		{object}	CreateAdminResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		409		{object}	httpx.ErrorBody
//	@Security		BearerAuth
//	@Router			/api/admin/admins [post].
func (h *AdminAdminsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req createAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidRequest, "")
		return
	}

	password, err := h.AdminService.CreateAdminUser(ctx, service.CreateAdminRequest{
		Email:    req.Email,
		Nom:      req.Nom,
		Prenom:   req.Prenom,
		Role:     req.Role,
		Password: req.Password,
	})
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusCreated, CreateAdminResponse{
			Email:    req.Email,
			Password: password,
			Message:  msgAdminCreated,
		})
	case errors.Is(err, service.ErrMissingFields):
		httpx.WriteError(w, http.StatusBadRequest, msgMissingFields, "")
	case errors.Is(err, service.ErrInvalidRole):
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidRole, "")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, msgEmailTaken, "")
	default:
		log.Error("admin creation failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgServerError, err.Error())
	}
}

type AdminUserStatusHandler struct {
	AdminService *service.AdminService
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// ServeHTTP godoc
//
//	@Summary		Account Status Update
//	@Description	Sets an account's status. Activation and refusal are both reversible; the
//	@Description	change takes effect on the account's next login attempt.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"User ID"
//	@Param			body	body		updateStatusRequest	true	"New status"
//	@Success		200		{object}	MessageResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Security		BearerAuth
//	@Router			/api/admin/users/{id}/status [patch].
func (h *AdminUserStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidRequest, "")
		return
	}

	err := h.AdminService.UpdateUserStatus(ctx, r.PathValue("id"), req.Status)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: msgStatusUpdated})
	case errors.Is(err, service.ErrInvalidStatus):
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidStatus, "")
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgUserNotFound, "")
	default:
		slogx.FromContext(ctx).Error("status update failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgServerError, err.Error())
	}
}

type AdminUserRoleHandler struct {
	AdminService *service.AdminService
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// ServeHTTP godoc
//
//	@Summary		Account Role Update
//	@Description	Sets an account's role. Active sessions keep their embedded role until the
//	@Description	next login.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"User ID"
//	@Param			body	body		updateRoleRequest	true	"New role"
//	@Success		200		{object}	MessageResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Security		BearerAuth
//	@Router			/api/admin/users/{id}/role [patch].
func (h *AdminUserRoleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidRequest, "")
		return
	}

	err := h.AdminService.UpdateUserRole(ctx, r.PathValue("id"), req.Role)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: msgRoleUpdated})
	case errors.Is(err, service.ErrInvalidRole):
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidRole, "")
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgUserNotFound, "")
	default:
		slogx.FromContext(ctx).Error("role update failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgServerError, err.Error())
	}
}

type AdminUserPasswordHandler struct {
	AdminService *service.AdminService
	Store        store.Store
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Account Password Reset
//	@Description	Replaces an account's password and sends the (simulated) notification email.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"User ID"
//	@Param			body	body		resetPasswordRequest	true	"New password"
//	@Success		200		{object}	MessageResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Security		BearerAuth
//	@Router			/api/admin/users/{id}/password [post].
func (h *AdminUserPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidRequest, "")
		return
	}
	if req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, msgMissingFields, "")
		return
	}

	userID := r.PathValue("id")
	user, err := h.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, msgUserNotFound, "")
		return
	}
	if err != nil {
		slogx.FromContext(ctx).Error("user lookup failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgServerError, err.Error())
		return
	}

	if err := h.AdminService.ResetUserPassword(ctx, userID, req.Password); err != nil {
		slogx.FromContext(ctx).Error("password reset failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgServerError, err.Error())
		return
	}

	h.AdminService.SendPasswordResetEmail(ctx, user.Email, req.Password)

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: msgPasswordReset})
}
