// Package webui serves the browser-facing blog UI.
//
// Public routes render the post list and detail pages straight from
// the upstream content API. The /admin subtree is gated by a route
// guard that checks the cookie session on every request. Admin pages
// are composed of htmx partials driven by a per-view console state
// machine (see package console): the collection loads once per page
// mount, tab switches and deletes work against the cached state, and
// create/update submissions re-fetch the collection in full.
//
// Media assets under /media are reverse-proxied to the upstream so
// image URIs stored on posts resolve within the frontend's origin.
package webui
