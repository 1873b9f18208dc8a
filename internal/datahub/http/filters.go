package http

import (
	"net/http"

	"github.com/pmn-sn/datahub/internal/datahub/service"
	"github.com/pmn-sn/datahub/pkg/httpx"
	"github.com/pmn-sn/datahub/pkg/slogx"
)

type FiltersHandler struct {
	SearchService *service.SearchService
}

// ServeHTTP godoc
//
//	@Summary		Filter Options
//	@Description	Cascading option lists for the directory filter dropdowns. Passing the
//	@Description	currently selected filters narrows the dependent levels: region narrows
//	@Description	departement, region+departement narrow commune, and filiere narrows metier.
//	@Tags			Directory
//	@Produce		json
//	@Param			region		query		string	false	"Selected region"
//	@Param			departement	query		string	false	"Selected departement"
//	@Param			commune		query		string	false	"Selected commune"
//	@Param			filiere		query		string	false	"Selected filiere"
//	@Success		200			{object}	domain.FilterOptions
//	@Failure		401			{object}	httpx.ErrorBody
//	@Failure		500			{object}	httpx.ErrorBody
//	@Security		BearerAuth
//	@Router			/api/filters [get].
func (h *FiltersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := h.SearchService.FilterOptions(ctx, filtersFromQuery(r))
	if err != nil {
		slogx.FromContext(ctx).Error("filter options lookup failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgServerError, err.Error())
		return
	}

	httpx.WriteJSON(w, http.StatusOK, opts)
}
