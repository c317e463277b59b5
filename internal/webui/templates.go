// ABOUTME: Template rendering functions for the web UI
// ABOUTME: Loads templates from the embedded filesystem and renders them

package webui

import (
	"html/template"
	"net/http"
	"time"

	"github.com/makblog/blogfront/internal/apiclient"
	"github.com/makblog/blogfront/internal/console"
)

// templateFuncs are shared helpers available in every template.
var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"excerpt": excerpt,
}

// Template data types
type postCard struct {
	ID        int
	Title     string
	Content   string
	Image     string
	CreatedAt time.Time
}

type homeData struct {
	Title string
	Posts []postCard
}

type detailData struct {
	Title       string
	Post        *apiclient.Post
	ContentHTML template.HTML
}

type messageData struct {
	Title   string
	Message string
}

type loginData struct {
	Title string
	Error string
}

type tabData struct {
	ViewID    string
	Tab       string
	Posts     []apiclient.Post
	PostCount int
}

type adminPageData struct {
	Title    string
	Username string
	Notice   string
	tabData
}

type postFormData struct {
	ViewID          string
	Mode            string
	EditingID       int
	FormTitle       string
	FormContent     string
	CurrentImageURL string
	Notice          string
}

type confirmDeleteData struct {
	ViewID string
	Post   apiclient.Post
}

type noticeData struct {
	Message string
}

func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("failed to render template", "template", name, "error", err)
	}
}

func (s *Server) pageTemplate(pages ...string) *template.Template {
	files := append([]string{"templates/base.html"}, pages...)
	return template.Must(template.New("base.html").Funcs(templateFuncs).ParseFS(templateFS, files...))
}

func (s *Server) partialTemplate(partials ...string) *template.Template {
	return template.Must(template.New("partial").Funcs(templateFuncs).ParseFS(templateFS, partials...))
}

// renderHome renders the public post list.
func (s *Server) renderHome(w http.ResponseWriter, posts []apiclient.Post) {
	cards := make([]postCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, postCard{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			Image:     p.Image,
			CreatedAt: p.CreatedAt,
		})
	}

	tmpl := s.pageTemplate("templates/home.html")
	s.render(w, tmpl, "base.html", homeData{Title: "MakBlog", Posts: cards})
}

// renderPostDetail renders a single post with its content as markdown.
func (s *Server) renderPostDetail(w http.ResponseWriter, post *apiclient.Post) {
	tmpl := s.pageTemplate("templates/post_detail.html")
	s.render(w, tmpl, "base.html", detailData{
		Title:       post.Title,
		Post:        post,
		ContentHTML: s.markdown(post.Content),
	})
}

// renderNotFound renders the terminal "post not found" page.
func (s *Server) renderNotFound(w http.ResponseWriter) {
	tmpl := s.pageTemplate("templates/not_found.html")
	w.WriteHeader(http.StatusNotFound)
	s.render(w, tmpl, "base.html", messageData{Title: "Post not found"})
}

// renderErrorPage renders a degraded page for a failed fetch.
func (s *Server) renderErrorPage(w http.ResponseWriter, message string) {
	tmpl := s.pageTemplate("templates/error.html")
	w.WriteHeader(http.StatusBadGateway)
	s.render(w, tmpl, "base.html", messageData{Title: "Something went wrong", Message: message})
}

// renderLoginPage renders the login form.
func (s *Server) renderLoginPage(w http.ResponseWriter, errorMsg string) {
	tmpl := s.pageTemplate("templates/login.html")
	s.render(w, tmpl, "base.html", loginData{Title: "Login", Error: errorMsg})
}

func newTabData(vid string, c *console.Console) tabData {
	return tabData{
		ViewID:    vid,
		Tab:       string(c.ActiveTab()),
		Posts:     c.Posts(),
		PostCount: c.PostCount(),
	}
}

// renderAdminPage renders the full admin console shell.
func (s *Server) renderAdminPage(w http.ResponseWriter, username, vid string, c *console.Console, notice string) {
	tmpl := s.pageTemplate(
		"templates/admin.html",
		"templates/partials/tab_content.html",
		"templates/partials/dashboard.html",
		"templates/partials/posts_table.html",
	)
	s.render(w, tmpl, "base.html", adminPageData{
		Title:    "Admin",
		Username: username,
		Notice:   notice,
		tabData:  newTabData(vid, c),
	})
}

// renderTabContent renders the active tab partial.
func (s *Server) renderTabContent(w http.ResponseWriter, vid string, c *console.Console) {
	tmpl := s.partialTemplate(
		"templates/partials/tab_content.html",
		"templates/partials/dashboard.html",
		"templates/partials/posts_table.html",
	)
	s.render(w, tmpl, "tab_content", newTabData(vid, c))
}

// renderSubmitSuccess clears the modal slot and swaps the refreshed
// tab content in out-of-band.
func (s *Server) renderSubmitSuccess(w http.ResponseWriter, vid string, c *console.Console) {
	tmpl := s.partialTemplate(
		"templates/partials/tab_content.html",
		"templates/partials/dashboard.html",
		"templates/partials/posts_table.html",
	)
	s.render(w, tmpl, "tab_content_oob", newTabData(vid, c))
}

// renderPostForm renders the create/edit modal.
func (s *Server) renderPostForm(w http.ResponseWriter, vid string, c *console.Console, notice string) {
	form := c.FormFields()
	tmpl := s.partialTemplate("templates/partials/post_form.html")
	s.render(w, tmpl, "post_form", postFormData{
		ViewID:          vid,
		Mode:            string(c.Mode()),
		EditingID:       c.EditingID(),
		FormTitle:       form.Title,
		FormContent:     form.Content,
		CurrentImageURL: c.CurrentImageURL(),
		Notice:          notice,
	})
}

// renderDeleteConfirm renders the delete confirmation modal.
func (s *Server) renderDeleteConfirm(w http.ResponseWriter, vid string, post *apiclient.Post) {
	tmpl := s.partialTemplate("templates/partials/confirm_delete.html")
	s.render(w, tmpl, "confirm_delete", confirmDeleteData{ViewID: vid, Post: *post})
}

// renderEmptyModal clears the modal slot.
func (s *Server) renderEmptyModal(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

// renderNotice renders a blocking notice into the modal slot.
func (s *Server) renderNotice(w http.ResponseWriter, message string) {
	tmpl := s.partialTemplate("templates/partials/notice.html")
	s.render(w, tmpl, "notice", noticeData{Message: message})
}
