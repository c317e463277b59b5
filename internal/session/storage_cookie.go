// ABOUTME: Cookie-backed session storage for the web frontend
// ABOUTME: Scoped to one request/response pair; the browser is the persistence

package session

import (
	"net/http"
	"net/url"
)

// Cookie names for the three persisted session fields.
const (
	AccessCookieName   = "blog_access_token"
	RefreshCookieName  = "blog_refresh_token"
	UsernameCookieName = "blog_username"
)

// CookieStorage reads the session from a request's cookies and writes
// it back on the response. One instance is built per request; the
// browser carries the state between requests the way localStorage
// would in a single-page client.
type CookieStorage struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
}

// NewCookieStorage creates a storage bound to the given request and
// response. secure marks the cookies HTTPS-only.
func NewCookieStorage(w http.ResponseWriter, r *http.Request, secure bool) *CookieStorage {
	return &CookieStorage{w: w, r: r, secure: secure}
}

// Load reads the session fields from the request cookies. Absent
// cookies yield empty fields, never an error.
func (c *CookieStorage) Load() (Session, error) {
	return Session{
		Access:   c.cookieValue(AccessCookieName),
		Refresh:  c.cookieValue(RefreshCookieName),
		Username: c.cookieValue(UsernameCookieName),
	}, nil
}

// Save sets the three session cookies on the response.
func (c *CookieStorage) Save(sess Session) error {
	c.setCookie(AccessCookieName, sess.Access)
	c.setCookie(RefreshCookieName, sess.Refresh)
	c.setCookie(UsernameCookieName, sess.Username)
	return nil
}

// Clear expires all three cookies. Idempotent.
func (c *CookieStorage) Clear() error {
	c.expireCookie(AccessCookieName)
	c.expireCookie(RefreshCookieName)
	c.expireCookie(UsernameCookieName)
	return nil
}

func (c *CookieStorage) cookieValue(name string) string {
	cookie, err := c.r.Cookie(name)
	if err != nil {
		return ""
	}
	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return value
}

func (c *CookieStorage) setCookie(name, value string) {
	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(value),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *CookieStorage) expireCookie(name string) {
	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
