// Package forms validates the sign-in and sign-up forms before anything is
// sent to the backend.
package forms

import (
	"net/mail"
	"slices"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dmitrijs2005/medreport/internal/client/models"
)

const (
	MaxNameLen     = 50
	MinPasswordLen = 8
)

// Field names, in form order.
const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

var fieldOrder = []string{FieldFirstName, FieldLastName, FieldEmail, FieldPassword, FieldConfirmPassword}

// FieldErrors maps a field name to its first failing rule.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, f := range fe.Fields() {
		msgs = append(msgs, fe[f])
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the failing field names in form order.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for _, f := range fieldOrder {
		if _, ok := fe[f]; ok {
			out = append(out, f)
		}
	}
	var extra []string
	for f := range fe {
		if !slices.Contains(fieldOrder, f) {
			extra = append(extra, f)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func (fe FieldErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// LoginForm is the sign-in prompt.
type LoginForm struct {
	Email    string
	Password string
}

func (f *LoginForm) Validate() error {
	fe := FieldErrors{}
	validateEmail(fe, f.Email)
	if f.Password == "" {
		fe[FieldPassword] = "Password is required"
	}
	return fe.orNil()
}

// Clear wipes the password.
func (f *LoginForm) Clear() {
	f.Password = ""
}

// SignUpForm is the registration prompt.
type SignUpForm struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (f *SignUpForm) Validate() error {
	fe := FieldErrors{}
	validateName(fe, FieldFirstName, "First name", f.FirstName)
	validateName(fe, FieldLastName, "Last name", f.LastName)
	validateEmail(fe, f.Email)

	switch {
	case f.Password == "":
		fe[FieldPassword] = "Password is required"
	case utf8.RuneCountInString(f.Password) < MinPasswordLen:
		fe[FieldPassword] = "Password must be at least 8 characters"
	}

	switch {
	case f.ConfirmPassword == "":
		fe[FieldConfirmPassword] = "Please confirm your password"
	case f.ConfirmPassword != f.Password:
		fe[FieldConfirmPassword] = "Passwords must match"
	}
	return fe.orNil()
}

// Registration joins first and last name with a single space.
func (f *SignUpForm) Registration() models.Registration {
	return models.Registration{
		Name:     strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	}
}

// Clear wipes both password fields.
func (f *SignUpForm) Clear() {
	f.Password = ""
	f.ConfirmPassword = ""
}

func validateName(fe FieldErrors, field, label, v string) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		fe[field] = label + " is required"
	case utf8.RuneCountInString(v) > MaxNameLen:
		fe[field] = "Must be 50 characters or less"
	}
}

func validateEmail(fe FieldErrors, v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		fe[FieldEmail] = "Email is required"
		return
	}
	if !ValidEmail(v) {
		fe[FieldEmail] = "Invalid email address"
	}
}

// ValidEmail accepts a bare addr-spec with a dotted domain, e.g.
// "ann@example.com". Display-name forms are rejected.
func ValidEmail(v string) bool {
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(v, '@')
	domain := v[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

// Gate keeps a form from being submitted twice while a request is in flight.
type Gate struct {
	mu       sync.Mutex
	inFlight bool
}

// Begin reports whether the caller may submit. Every true result must be
// paired with End.
func (g *Gate) Begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight {
		return false
	}
	g.inFlight = true
	return true
}

func (g *Gate) End() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inFlight = false
}
