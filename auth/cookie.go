package auth

import "net/http"

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "token"

// AttachSession sets the session cookie on the response. The cookie is
// HTTP-only, secure and cross-site-sendable so the browser frontend on a
// different origin can present it; no Max-Age is set beyond the token's
// own expiry.
func AttachSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearSession removes the session cookie. The flag set must match
// AttachSession exactly; browsers silently ignore a clear with
// mismatched flags.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
