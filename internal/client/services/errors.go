package services

import "errors"

// ErrMissingToken is wrapped when a successful sign-in response carries no token.
var ErrMissingToken = errors.New("sign-in response has no token")
