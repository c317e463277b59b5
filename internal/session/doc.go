// Package session is the single owner of the persisted authentication
// state: an opaque access token, an unused refresh token, and the
// display username.
//
// Store composes a Storage backend with the API's token endpoint.
// Two backends exist: FileStorage for the CLI (a JSON file under the
// user data directory) and CookieStorage for the web frontend (the
// browser's same-origin cookies). Token absence means unauthenticated;
// there is no expiry tracking or automatic refresh.
package session
