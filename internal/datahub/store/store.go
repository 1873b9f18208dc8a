package store

import (
	"context"
	"errors"
	"time"

	"github.com/pmn-sn/datahub/internal/datahub/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrTransientRead marks a read that returned a malformed or truncated
	// result. Callers may retry a bounded number of times before surfacing
	// the failure.
	ErrTransientRead = errors.New("store: transient read anomaly")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories to keep concerns tidy and testable.
type Store interface {
	Artisans() Artisans
	Users() Users
	Metadata() Metadata

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// ArtisanQuery describes one directory search: conjunctive equality filters,
// an optional free-text term matched accent- and case-insensitively across
// all artisan text fields, and a result window.
type ArtisanQuery struct {
	Filters domain.ArtisanFilters
	Search  string
	Limit   int
	Offset  int
}

// MetadataTuple is one distinct location/trade combination observed in the
// artisan records, used to refresh the metadata lookup sets.
type MetadataTuple struct {
	Region      string
	Departement string
	Commune     string
	Quartier    string
	Filiere     string
	Metier      string
}

type Artisans interface {
	// SearchArtisans returns the page of records matching q, newest first.
	SearchArtisans(ctx context.Context, q ArtisanQuery) ([]domain.Artisan, error)

	// CountArtisans returns the total number of records matching q's
	// predicate, ignoring Limit/Offset.
	CountArtisans(ctx context.Context, q ArtisanQuery) (int, error)

	// CreateArtisan inserts a new record (id is provided by app via ULID).
	// Duplicate records are allowed; homonyms are real.
	CreateArtisan(ctx context.Context, a domain.Artisan) error

	// MetadataTuples returns the distinct location/trade combinations
	// present in the directory.
	MetadataTuples(ctx context.Context) ([]MetadataTuple, error)

	// IsEmpty returns true if there are no artisan records.
	IsEmpty(ctx context.Context) (bool, error)
}

// UserListFilter selects which accounts ListUsers returns.
type UserListFilter string

const (
	UserFilterAll     UserListFilter = "all"
	UserFilterPending UserListFilter = "pending"
	// UserFilterActive matches every non-pending account, refused included.
	UserFilterActive UserListFilter = "active"
	UserFilterOnline UserListFilter = "online"
)

// UserListQuery bounds a ListUsers call. ActiveSince is only consulted for
// the online filter.
type UserListQuery struct {
	Filter      UserListFilter
	ActiveSince time.Time
	Limit       int
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.UserAccount, error)

	// GetUserByEmail is used during login; email doubles as username.
	GetUserByEmail(ctx context.Context, email string) (domain.UserAccount, error)

	// CreateUser inserts a new account. Returns ErrAlreadyExists when the
	// email is taken.
	CreateUser(ctx context.Context, u domain.UserAccount) error

	// ListUsers returns accounts matching q, newest first.
	ListUsers(ctx context.Context, q UserListQuery) ([]domain.UserAccount, error)

	// ListAdmins returns admin-class accounts, newest first.
	ListAdmins(ctx context.Context) ([]domain.UserAccount, error)

	UpdateUserStatus(ctx context.Context, userID string, status string) error
	UpdateUserRole(ctx context.Context, userID string, role string) error
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// TouchLastActive records a heartbeat for the account with this email.
	// Unknown emails are a no-op, not an error.
	TouchLastActive(ctx context.Context, email string, at time.Time) error

	CountUsers(ctx context.Context) (int, error)
	CountUsersByStatus(ctx context.Context, status string) (int, error)
	CountUsersActiveSince(ctx context.Context, since time.Time) (int, error)
}

type Metadata interface {
	// List* return option values alphabetically, capped at limit. Empty
	// parent filters widen the result.
	ListRegions(ctx context.Context, limit int) ([]string, error)
	ListDepartements(ctx context.Context, region string, limit int) ([]string, error)
	ListCommunes(ctx context.Context, region, departement string, limit int) ([]string, error)
	ListQuartiers(ctx context.Context, region, departement, commune string, limit int) ([]string, error)
	ListFilieres(ctx context.Context, limit int) ([]string, error)
	ListMetiers(ctx context.Context, filiere string, limit int) ([]string, error)

	// Upsert* enforce set semantics: inserting an existing (name, parents)
	// tuple is a no-op.
	UpsertRegion(ctx context.Context, name string) error
	UpsertDepartement(ctx context.Context, name, region string) error
	UpsertCommune(ctx context.Context, name, departement, region string) error
	UpsertQuartier(ctx context.Context, name, commune, departement, region string) error
	UpsertFiliere(ctx context.Context, name string) error
	UpsertMetier(ctx context.Context, name, filiere string) error
}
