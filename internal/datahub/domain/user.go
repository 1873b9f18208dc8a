package domain

import "time"

// Account roles. Chambre de Métiers accounts are the regular consumers of the
// directory; admin and super_admin manage accounts through the dashboard.
const (
	RoleChambreMetier = "chambre_metier"
	RoleAdmin         = "admin"
	RoleSuperAdmin    = "super_admin"
)

// Account statuses. Self-registered accounts start pending and stay locked
// out until an administrator activates them. Admins may toggle between
// active and refused in either direction.
const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusRefused = "refused"
)

// IsAdminRole reports whether role belongs to the administrator class.
func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// IsValidStatus reports whether s is one of the known account statuses.
func IsValidStatus(s string) bool {
	return s == StatusPending || s == StatusActive || s == StatusRefused
}

// UserAccount is a platform login identity. Email doubles as the username.
type UserAccount struct {
	ID           string
	Email        string
	PasswordHash string // argon2 encoded, never serialized
	Role         string
	Status       string
	Nom          string
	Prenom       string
	Fonction     string
	ChambreName  string
	Region       string
	Departement  string
	Phone        string
	LastActiveAt *time.Time // heartbeat timestamp, nil until first activity
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Online reports whether the account's heartbeat falls within the trailing
// window ending at now. There is no disconnect detection; "online" is purely
// a recency query evaluated at read time.
func (u UserAccount) Online(now time.Time, window time.Duration) bool {
	return u.LastActiveAt != nil && u.LastActiveAt.After(now.Add(-window))
}
