package http

import "github.com/pmn-sn/datahub/internal/datahub/domain"

// MessageResponse carries a user-facing confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is returned by both login endpoints.
type LoginResponse struct {
	User  domain.Session `json:"user"`
	Token string         `json:"token"`
}

// CreateAdminResponse echoes the credentials of a freshly created admin
// account. The password appears exactly once, in this response.
type CreateAdminResponse struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Message  string `json:"message"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// User-facing messages. The product audience is francophone, so every
// message a browser may display is in French.
const (
	msgInvalidRequest   = "Requête invalide"
	msgMissingFields    = "Tous les champs sont obligatoires"
	msgPasswordMismatch = "Les mots de passe ne correspondent pas"
	msgEmailTaken       = "Cet email est déjà utilisé"
	msgRegistered       = "Inscription réussie. Votre compte est en attente de validation."
	msgInvalidLogin     = "Email ou mot de passe incorrect"
	msgAccountPending   = "Votre compte est en attente de validation"
	msgAdminOnly        = "Accès réservé aux administrateurs"
	msgServerError      = "Erreur serveur"
	msgUserNotFound     = "Utilisateur introuvable"
	msgInvalidStatus    = "Statut invalide"
	msgInvalidRole      = "Rôle invalide"
	msgStatusUpdated    = "Statut mis à jour"
	msgRoleUpdated      = "Rôle mis à jour"
	msgPasswordReset    = "Mot de passe réinitialisé"
	msgAdminCreated     = "Compte administrateur créé"
)
