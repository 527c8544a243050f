// Package common contains shared constants and helpers used across
// MedReport client components.
package common

// AuthorizationHeaderName is the HTTP header that carries the bearer token
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the session token in the Authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"

// PDFMimeType is the only content type accepted for report uploads.
const PDFMimeType = "application/pdf"

// MaxReportSize is the upload ceiling for a single report (10 MiB).
const MaxReportSize = 10 * 1024 * 1024
