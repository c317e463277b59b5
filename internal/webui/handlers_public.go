// ABOUTME: Public page handlers: post list, post detail, login, logout
// ABOUTME: Reading pages need no session; login establishes one, logout clears it

package webui

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/makblog/blogfront/internal/apiclient"
)

// handleHome renders the post list. A failed fetch renders the page
// with no cards; absence of data and an empty list look identical.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	posts, err := s.api.ListPosts(r.Context())
	if err != nil {
		s.logger.Error("failed to fetch posts", "error", err)
		posts = nil
	}
	s.renderHome(w, posts)
}

// handlePostDetail renders one post. A missing identifier is a
// terminal "not found" page with a link home, not an error banner.
func (s *Server) handlePostDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.renderNotFound(w)
		return
	}

	post, err := s.api.GetPost(r.Context(), id)
	if errors.Is(err, apiclient.ErrPostNotFound) {
		s.renderNotFound(w)
		return
	}
	if err != nil {
		s.logger.Error("failed to fetch post", "id", id, "error", err)
		s.renderErrorPage(w, "The post could not be loaded. Please try again.")
		return
	}

	s.renderPostDetail(w, post)
}

// handleLoginPage renders the login form, or skips it for a caller who
// already holds a token.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.sessionStore(w, r).Authenticated() {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	s.renderLoginPage(w, "")
}

// handleLogin processes the login form submission.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderLoginPage(w, "Invalid form data")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		s.renderLoginPage(w, "Username and password required")
		return
	}

	store := s.sessionStore(w, r)
	_, err := store.Authenticate(r.Context(), username, password)
	if err != nil {
		var authErr *apiclient.AuthError
		if errors.As(err, &authErr) {
			s.renderLoginPage(w, "Invalid username or password")
			return
		}
		s.logger.Error("login failed", "error", err)
		s.renderLoginPage(w, "Login failed. Please try again.")
		return
	}

	s.logger.Info("login successful", "username", username)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleLogout clears the session and sends the user home. Idempotent.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessionStore(w, r).Clear(); err != nil {
		s.logger.Error("failed to clear session", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
