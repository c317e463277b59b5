// ABOUTME: Admin console handlers: tabs, create/edit modal, delete confirmation
// ABOUTME: htmx partials driven by a per-view console state machine

package webui

import (
	"net/http"
	"strconv"

	"github.com/makblog/blogfront/internal/apiclient"
	"github.com/makblog/blogfront/internal/console"
)

// maxUploadSize caps post image uploads.
const maxUploadSize = 32 << 20

// handleAdminPage mounts a fresh console view: one collection fetch,
// then everything below runs against the cached state.
func (s *Server) handleAdminPage(w http.ResponseWriter, r *http.Request) {
	store := s.sessionStore(w, r)
	c := console.New(s.sessionAPI(w, r))

	notice := ""
	if err := c.Mount(r.Context()); err != nil {
		s.logger.Error("failed to load admin collection", "error", err)
		notice = "Posts could not be loaded. Refresh the page to retry."
	}

	vid := s.views.put(c)
	s.renderAdminPage(w, store.CurrentUser(), vid, c, notice)
}

// view resolves the console for a partial request. A pruned or unknown
// view forces a full page reload via htmx.
func (s *Server) view(w http.ResponseWriter, r *http.Request) (*console.Console, string, bool) {
	vid := r.PathValue("vid")
	c, ok := s.views.get(vid)
	if !ok {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusOK)
		return nil, "", false
	}
	return c, vid, true
}

// handleTabSwitch swaps the active tab from the cached collection.
// Deliberately no re-fetch.
func (s *Server) handleTabSwitch(w http.ResponseWriter, r *http.Request) {
	c, vid, ok := s.view(w, r)
	if !ok {
		return
	}

	c.SwitchTab(console.Tab(r.PathValue("tab")))
	s.renderTabContent(w, vid, c)
}

// handlePostNew opens the modal in create mode with an empty form.
func (s *Server) handlePostNew(w http.ResponseWriter, r *http.Request) {
	c, vid, ok := s.view(w, r)
	if !ok {
		return
	}

	c.OpenCreate()
	s.renderPostForm(w, vid, c, "")
}

// handlePostEdit fetches the target post and opens the modal pre-filled.
// If the fetch fails the modal never opens; a notice is shown instead.
func (s *Server) handlePostEdit(w http.ResponseWriter, r *http.Request) {
	c, vid, ok := s.view(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.renderNotice(w, "Unknown post.")
		return
	}

	if err := c.OpenEdit(r.Context(), id); err != nil {
		s.renderNotice(w, "Failed to fetch post details.")
		return
	}
	s.renderPostForm(w, vid, c, "")
}

// handleModalClose resets the modal state and clears the modal slot.
func (s *Server) handleModalClose(w http.ResponseWriter, r *http.Request) {
	c, _, ok := s.view(w, r)
	if !ok {
		return
	}

	c.CloseModal()
	s.renderEmptyModal(w)
}

// handlePostSubmit submits the open form. Success closes the modal and
// swaps in the re-fetched posts table; failure re-renders the form
// with a blocking notice and all fields intact.
func (s *Server) handlePostSubmit(w http.ResponseWriter, r *http.Request) {
	c, vid, ok := s.view(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.renderPostForm(w, vid, c, "The form could not be read. Please try again.")
		return
	}

	var image *apiclient.ImageUpload
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		image = &apiclient.ImageUpload{Filename: header.Filename, Reader: file}
	}

	mode := c.Mode()
	c.SetForm(r.FormValue("title"), r.FormValue("content"), image)

	if err := c.Submit(r.Context()); err != nil {
		s.logger.Error("post submission failed", "mode", mode, "error", err)
		s.renderPostForm(w, vid, c, submitFailureNotice(mode))
		return
	}

	c.SwitchTab(console.TabPosts)
	s.renderSubmitSuccess(w, vid, c)
}

func submitFailureNotice(mode console.Mode) string {
	if mode == console.ModeEdit {
		return "Post update failed."
	}
	return "Post creation failed."
}

// handleDeleteConfirm renders the explicit confirmation step.
func (s *Server) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	c, vid, ok := s.view(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.renderNotice(w, "Unknown post.")
		return
	}

	var target *apiclient.Post
	for _, p := range c.Posts() {
		if p.ID == id {
			post := p
			target = &post
			break
		}
	}
	if target == nil {
		s.renderNotice(w, "Unknown post.")
		return
	}

	s.renderDeleteConfirm(w, vid, target)
}

// handlePostDelete fires only after confirmation. The collection is
// spliced locally; no re-fetch.
func (s *Server) handlePostDelete(w http.ResponseWriter, r *http.Request) {
	c, vid, ok := s.view(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.renderNotice(w, "Unknown post.")
		return
	}

	if err := c.Delete(r.Context(), id); err != nil {
		s.logger.Error("post delete failed", "id", id, "error", err)
		s.renderNotice(w, "Delete failed.")
		return
	}

	c.SwitchTab(console.TabPosts)
	s.renderSubmitSuccess(w, vid, c)
}
