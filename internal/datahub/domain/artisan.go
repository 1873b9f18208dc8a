package domain

import "time"

// Artisan is one craftsperson directory entry. Records are created by import
// or seeding, never mutated afterwards, and duplicates are possible
// (imports do not de-duplicate artisans).
type Artisan struct {
	ID          string    `json:"id"`
	Region      string    `json:"region"`
	Departement string    `json:"departement"`
	Commune     string    `json:"commune"`
	Quartier    string    `json:"quartier"`
	Filiere     string    `json:"filiere"` // trade category
	Metier      string    `json:"metier"`  // specific occupation within the filiere
	Nom         string    `json:"nom"`
	Prenom      string    `json:"prenom"`
	Telephone   string    `json:"telephone"` // free-form, no format validation
	CreatedAt   time.Time `json:"createdAt"`
}

// ArtisanFilters are the optional conjunctive equality filters of a directory
// search. Empty fields are inactive.
type ArtisanFilters struct {
	Region      string
	Departement string
	Commune     string
	Quartier    string
	Filiere     string
	Metier      string
}

// IsZero reports whether no filter is active.
func (f ArtisanFilters) IsZero() bool {
	return f == ArtisanFilters{}
}

// FilterOptions holds the cascading option lists used to populate the
// directory filter dropdowns. Each list is alphabetical and narrowed by any
// higher-level filter already chosen.
type FilterOptions struct {
	Regions      []string `json:"regions"`
	Departements []string `json:"departements"`
	Communes     []string `json:"communes"`
	Quartiers    []string `json:"quartiers"`
	Filieres     []string `json:"filieres"`
	Metiers      []string `json:"metiers"`
}
