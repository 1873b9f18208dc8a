// Package jwtx issues and verifies the HS256 session tokens that carry a
// logged-in account's role, status and profile summary between requests.
package jwtx

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session payload. Subject is the account id.
type Claims struct {
	jwt.RegisteredClaims

	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Nom      string `json:"nom,omitempty"`
	Prenom   string `json:"prenom,omitempty"`
	Chambre  string `json:"chambre,omitempty"`
	Fonction string `json:"fonction,omitempty"`
}
