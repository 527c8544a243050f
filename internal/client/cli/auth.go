package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/medreport/internal/client/forms"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const (
	msgLoginFailed  = "Failed to login. Please try again."
	msgSignUpFailed = "Failed to sign up. Please try again."
)

// readSecret reads a hidden field. The value travels as a string into the
// JSON request body; forms.Clear drops the form's copy after submission.
func (a *App) readSecret(prompt string) (string, error) {
	pw, err := getPassword(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func (a *App) printFieldErrors(err error) {
	var fe forms.FieldErrors
	if !errors.As(err, &fe) {
		a.Error(err.Error())
		return
	}
	for _, f := range fe.Fields() {
		fmt.Fprintf(a.out, "  %s: %s\n", f, fe[f])
	}
}

// Login is the sign-in prompt. It keeps asking until the backend accepts
// the credentials, the user leaves the email empty, or input ends.
// Nothing is sent while the form is invalid.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already signed in. Use 'logout' first.")
		return nil
	}
	if !a.loginGate.Begin() {
		return nil
	}
	defer a.loginGate.End()

	fmt.Fprintln(a.out, "Sign In (leave email empty to cancel)")
	for {
		var f forms.LoginForm

		email, err := getSimpleText(a.reader, "Email", a.out)
		if err != nil {
			return err
		}
		if email == "" {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
		f.Email = email

		if f.Password, err = a.readSecret("Password"); err != nil {
			return err
		}

		if err := f.Validate(); err != nil {
			a.printFieldErrors(err)
			f.Clear()
			continue
		}

		user, err := a.auth.SignIn(ctx, strings.TrimSpace(f.Email), f.Password)
		f.Clear()
		if err != nil {
			a.logger.Warn(ctx, "sign-in failed", "error", err)
			a.userError(err, msgLoginFailed)
			continue
		}

		if user != nil && user.Name != "" {
			a.Success("Welcome, " + user.Name + "!")
		} else {
			a.Success("Signed in.")
		}
		return nil
	}
}

// SignUp is the registration prompt. A created account is not signed in.
func (a *App) SignUp(ctx context.Context) error {
	if !a.signupGate.Begin() {
		return nil
	}
	defer a.signupGate.End()

	fmt.Fprintln(a.out, "Sign Up (leave first name empty to cancel)")
	for {
		var f forms.SignUpForm
		var err error

		if f.FirstName, err = getSimpleText(a.reader, "First Name", a.out); err != nil {
			return err
		}
		if f.FirstName == "" {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
		if f.LastName, err = getSimpleText(a.reader, "Last Name", a.out); err != nil {
			return err
		}
		if f.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
			return err
		}
		if f.Password, err = a.readSecret("Password"); err != nil {
			return err
		}
		if f.ConfirmPassword, err = a.readSecret("Confirm Password"); err != nil {
			f.Clear()
			return err
		}

		if err := f.Validate(); err != nil {
			a.printFieldErrors(err)
			f.Clear()
			continue
		}

		reg := f.Registration()
		f.Clear()
		if _, err := a.auth.SignUp(ctx, reg.Name, reg.Email, reg.Password); err != nil {
			a.logger.Warn(ctx, "sign-up failed", "error", err)
			a.userError(err, msgSignUpFailed)
			continue
		}

		a.Success("Account created. Please sign in with 'login'.")
		return nil
	}
}

// Logout drops the session and returns to the landing screen.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.SignOut(ctx); err != nil {
		a.logger.Error(ctx, "sign-out failed", "error", err)
		a.Error("Logout failed. Please try again.")
		return err
	}
	a.Success("Signed out.")
	a.router.Redirect(ctx, "/")
	return nil
}
