// Package cookies persists the client's cookie jar: named values with an
// expiry instant and the Secure/SameSite flags they were issued with.
//
// The jar is the terminal counterpart of the browser's cookie store. Expired
// rows read as absent and are purged lazily.
//
// Schema (see internal/client/migrations):
//
//	cookies(name TEXT PK, value TEXT, expires_at INTEGER unix seconds,
//	        secure INTEGER, same_site TEXT, updated_at INTEGER)
package cookies
