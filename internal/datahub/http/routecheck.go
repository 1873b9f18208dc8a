package http

import (
	"net/http"
	"strings"

	"github.com/pmn-sn/datahub/internal/datahub/domain"
	"github.com/pmn-sn/datahub/internal/datahub/service"
	"github.com/pmn-sn/datahub/pkg/httpx"
	"github.com/pmn-sn/datahub/pkg/jwtx"
)

type RouteCheckHandler struct {
	Verifier *jwtx.Verifier
}

// ServeHTTP godoc
//
//	@Summary		Route Gate
//	@Description	Classifies a front-end navigation for the current session. An invalid or
//	@Description	absent token is treated as no session, never as an error: the gate's job
//	@Description	is to say where the visitor belongs, not to refuse them.
//	@Tags			Auth
//	@Produce		json
//	@Param			path	query		string	true	"Navigation target path"
//	@Success		200		{object}	service.RouteDecision
//	@Failure		400		{object}	httpx.ErrorBody
//	@Router			/api/route-check [get].
func (h *RouteCheckHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidRequest, "path is required")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, service.AuthorizeRoute(h.sessionFromRequest(r), path))
}

// sessionFromRequest rebuilds the session from the bearer token when one is
// present and valid, nil otherwise.
func (h *RouteCheckHandler) sessionFromRequest(r *http.Request) *domain.Session {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return nil
	}

	claims, err := h.Verifier.Verify(strings.TrimSpace(strings.TrimPrefix(authz, "Bearer")))
	if err != nil {
		return nil
	}

	return &domain.Session{
		UserID:   claims.Subject,
		Email:    claims.Email,
		Role:     claims.Role,
		Status:   claims.Status,
		Nom:      claims.Nom,
		Prenom:   claims.Prenom,
		Chambre:  claims.Chambre,
		Fonction: claims.Fonction,
	}
}
