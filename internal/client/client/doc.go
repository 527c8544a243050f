// Package client is the MedReport client's single point of egress to the
// backend, plus the bootstrap of its local database.
//
// # Overview
//
//  1. A transport contract (Client) covering sign-in, sign-up and report
//     upload.
//  2. HTTPClient, the concrete implementation: a request/response pipeline
//     with interceptors. Outgoing requests get the session's bearer token
//     and a request id; a 401 response clears the session and redirects the
//     UI to its root route before the call fails.
//  3. InitDatabase / RunMigrations for the SQLite cookie jar.
//
// # Error Handling
//
// Failures are typed so callers can branch with errors.As:
//
//   - *ServerError: a response arrived with a non-2xx status.
//   - *SessionExpiredError: the response was 401 (session already cleared).
//   - *NetworkError: the request was sent but no response arrived.
//   - *RequestSetupError: the request could not be built.
//
// UserMessage returns the text to show for any of them.
//
// Nothing is retried automatically.
package client
