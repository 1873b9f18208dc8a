package domain

// Session is the identity snapshot carried by a logged-in client. It is
// embedded in the session token at login and is therefore a point-in-time
// copy: role or status changes take effect at the next login.
type Session struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Nom      string `json:"nom"`
	Prenom   string `json:"prenom"`
	Chambre  string `json:"chambre"`
	Fonction string `json:"fonction"`

	// Token is the raw signed session token handed back to the client.
	Token string `json:"token,omitempty"`
}

// IsAdmin reports whether the session belongs to an administrator-class account.
func (s *Session) IsAdmin() bool {
	return s != nil && IsAdminRole(s.Role)
}
