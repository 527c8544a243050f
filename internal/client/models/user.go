// Package models defines the client-side data exchanged with the MedReport
// backend and held in memory by the CLI.
package models

import "unicode"

// User is the profile blob returned by the backend on sign-in. It is
// advisory only: it is shown in the header and never used for
// authorization decisions.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Initial returns the upper-cased first letter of the user's name, or ""
// when unknown.
func (u *User) Initial() string {
	if u == nil {
		return ""
	}
	for _, r := range u.Name {
		return string(unicode.ToUpper(r))
	}
	return ""
}

// Credentials is the sign-in request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up request body.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the success body of the sign-in and sign-up endpoints.
// Token may be empty on sign-up.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// APIError is the failure body the backend returns with non-2xx statuses.
type APIError struct {
	Message string `json:"message"`
}
