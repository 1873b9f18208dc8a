package http

import (
	"net/http"
	"strconv"

	"github.com/pmn-sn/datahub/internal/datahub/domain"
	"github.com/pmn-sn/datahub/internal/datahub/service"
	"github.com/pmn-sn/datahub/pkg/httpx"
	"github.com/pmn-sn/datahub/pkg/slogx"
)

type ArtisansHandler struct {
	SearchService *service.SearchService
}

// ServeHTTP godoc
//
//	@Summary		Artisan Directory Search
//	@Description	Filtered, searchable, paginated listing of the artisan directory, newest first.
//	@Description	Equality filters combine conjunctively; the free-text search matches any record
//	@Description	field, ignoring case and accents.
//	@Tags			Directory
//	@Produce		json
//	@Param			region		query		string	false	"Region filter (exact)"
//	@Param			departement	query		string	false	"Departement filter (exact)"
//	@Param			commune		query		string	false	"Commune filter (exact)"
//	@Param			quartier	query		string	false	"Quartier filter (exact)"
//	@Param			filiere		query		string	false	"Filiere filter (exact)"
//	@Param			metier		query		string	false	"Metier filter (exact)"
//	@Param			search		query		string	false	"Free-text term"
//	@Param			page		query		int		false	"Page number, 1-based"
//	@Param			limit		query		int		false	"Page size (default 20)"
//	@Success		200			{object}	service.SearchPage
//	@Failure		401			{object}	httpx.ErrorBody
//	@Failure		500			{object}	httpx.ErrorBody
//	@Security		BearerAuth
//	@Router			/api/artisans [get].
func (h *ArtisansHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := h.SearchService.Search(ctx, service.SearchRequest{
		Filters: filtersFromQuery(r),
		Search:  q.Get("search"),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		slogx.FromContext(ctx).Error("directory search failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgServerError, err.Error())
		return
	}

	httpx.WriteJSON(w, http.StatusOK, result)
}

func filtersFromQuery(r *http.Request) domain.ArtisanFilters {
	q := r.URL.Query()
	return domain.ArtisanFilters{
		Region:      q.Get("region"),
		Departement: q.Get("departement"),
		Commune:     q.Get("commune"),
		Quartier:    q.Get("quartier"),
		Filiere:     q.Get("filiere"),
		Metier:      q.Get("metier"),
	}
}
