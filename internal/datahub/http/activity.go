package http

import (
	"net/http"

	"github.com/pmn-sn/datahub/internal/datahub/service"
	"github.com/pmn-sn/datahub/pkg/httpx"
)

type ActivityHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Activity Heartbeat
//	@Description	Records a presence heartbeat for the authenticated account. The endpoint is
//	@Description	fire-and-forget: it always returns 204, and a failed write is only logged.
//	@Tags			Directory
//	@Success		204
//	@Failure		401	{object}	httpx.ErrorBody
//	@Security		BearerAuth
//	@Router			/api/activity [post].
func (h *ActivityHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if claims, ok := httpx.ClaimsFromContext(ctx); ok {
		h.AccountService.TouchActivity(ctx, claims.Email)
	}

	w.WriteHeader(http.StatusNoContent)
}
