package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pmn-sn/datahub/internal/datahub/domain"
	"github.com/pmn-sn/datahub/internal/datahub/store"
)

const (
	// DefaultPageSize applies when the caller does not request a limit.
	DefaultPageSize = 20

	// filterOptionsCap bounds each cascading option list.
	filterOptionsCap = 1000
)

// SearchRequest is one directory search as submitted by a client. Zero or
// malformed values fall back to defaults rather than erroring.
type SearchRequest struct {
	Filters domain.ArtisanFilters
	Search  string
	Page    int
	Limit   int
}

// SearchPage is a page of directory results plus the pagination totals
// computed over the full predicate.
type SearchPage struct {
	Items      []domain.Artisan `json:"data"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

// SearchService composes filtered, paginated, search-augmented queries over
// the artisan directory.
type SearchService struct {
	Store store.Store
}

// Search runs req against the directory. Results are always newest first.
// Total counts every record matching the predicate regardless of the page
// requested, so a page beyond the last yields empty items with an unchanged
// total.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (SearchPage, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}

	q := store.ArtisanQuery{
		Filters: req.Filters,
		Search:  strings.TrimSpace(req.Search),
		Limit:   limit,
		Offset:  (page - 1) * limit,
	}

	items, err := s.Store.Artisans().SearchArtisans(ctx, q)
	if err != nil {
		return SearchPage{}, err
	}

	total, err := s.Store.Artisans().CountArtisans(ctx, q)
	if err != nil {
		return SearchPage{}, err
	}

	if items == nil {
		items = []domain.Artisan{}
	}

	return SearchPage{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// FilterOptions returns the cascading option lists for the filter dropdowns,
// each level narrowed by the higher-level choices already made: region
// narrows departement, region+departement narrow commune, all three narrow
// quartier, and filiere narrows metier. The six lookups run concurrently.
func (s *SearchService) FilterOptions(ctx context.Context, current domain.ArtisanFilters) (domain.FilterOptions, error) {
	md := s.Store.Metadata()

	var opts domain.FilterOptions
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		opts.Regions, err = md.ListRegions(ctx, filterOptionsCap)
		return err
	})
	g.Go(func() (err error) {
		opts.Departements, err = md.ListDepartements(ctx, current.Region, filterOptionsCap)
		return err
	})
	g.Go(func() (err error) {
		opts.Communes, err = md.ListCommunes(ctx, current.Region, current.Departement, filterOptionsCap)
		return err
	})
	g.Go(func() (err error) {
		opts.Quartiers, err = md.ListQuartiers(ctx, current.Region, current.Departement, current.Commune, filterOptionsCap)
		return err
	})
	g.Go(func() (err error) {
		opts.Filieres, err = md.ListFilieres(ctx, filterOptionsCap)
		return err
	})
	g.Go(func() (err error) {
		opts.Metiers, err = md.ListMetiers(ctx, current.Filiere, filterOptionsCap)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.FilterOptions{}, err
	}

	return opts, nil
}
