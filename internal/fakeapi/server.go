// ABOUTME: In-memory fake of the upstream blog content API
// ABOUTME: Backs local development and tests with the real HTTP contract

package fakeapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Credentials is the single account the fake API accepts.
type Credentials struct {
	Username string
	Password string
}

// Server is an in-memory stand-in for the content API. It speaks the
// same HTTP contract: JSON post listing and detail, JWT token issuing,
// bearer-gated multipart create/update, delete, and /media assets.
type Server struct {
	mu       sync.Mutex
	posts    map[int]Post
	media    map[string][]byte
	nextID   int
	creds    Credentials
	secret   []byte
	tokenTTL time.Duration
}

// Post mirrors the upstream wire format.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates a fake API accepting the given credentials and signing
// access tokens with secret.
func New(creds Credentials, secret []byte) *Server {
	return &Server{
		posts:    make(map[int]Post),
		media:    make(map[string][]byte),
		nextID:   1,
		creds:    creds,
		secret:   secret,
		tokenTTL: time.Hour,
	}
}

// Handler returns the HTTP handler implementing the API contract.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/", s.handleList)
	mux.HandleFunc("GET /api/{id}/", s.handleDetail)
	mux.HandleFunc("POST /api/token/", s.handleToken)
	mux.HandleFunc("POST /api/create/", s.requireToken(s.handleCreate))
	mux.HandleFunc("PUT /api/update/{id}/", s.requireToken(s.handleUpdate))
	mux.HandleFunc("DELETE /api/delete/{id}/", s.requireToken(s.handleDelete))
	mux.HandleFunc("GET /media/", s.handleMedia)
	return mux
}

// Seed inserts a post directly, returning its assigned identifier.
func (s *Server) Seed(title, content, image string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.posts[id] = Post{
		ID:        id,
		Title:     title,
		Content:   content,
		Image:     image,
		CreatedAt: time.Now().UTC(),
	}
	return id
}

// PostCount reports how many posts the fake currently stores.
func (s *Server) PostCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

// GetStored returns the stored post and whether it exists.
func (s *Server) GetStored(id int) (Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	return p, ok
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username != s.creds.Username || req.Password != s.creds.Password {
		writeJSONError(w, http.StatusUnauthorized, "No active account found with the given credentials")
		return
	}

	access, err := s.signToken(req.Username, s.tokenTTL)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "token signing failed")
		return
	}
	refresh, err := s.signToken(req.Username, 24*time.Hour)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "token signing failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access": access, "refresh": refresh})
}

func (s *Server) signToken(username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// requireToken gates a handler on a valid bearer token.
func (s *Server) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSONError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		})
		if err != nil || !token.Valid {
			writeJSONError(w, http.StatusUnauthorized, "Given token not valid for any token type")
			return
		}

		next(w, r)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	posts := make([]Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	s.mu.Unlock()

	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Not found.")
		return
	}

	s.mu.Lock()
	post, ok := s.posts[id]
	s.mu.Unlock()

	if !ok {
		writeJSONError(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	title, content, image, errMsg := s.parsePostForm(r)
	if errMsg != "" {
		writeJSONError(w, http.StatusBadRequest, errMsg)
		return
	}
	if title == "" {
		writeJSONError(w, http.StatusBadRequest, "title: This field may not be blank.")
		return
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	post := Post{
		ID:        id,
		Title:     title,
		Content:   content,
		Image:     image,
		CreatedAt: time.Now().UTC(),
	}
	s.posts[id] = post
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Not found.")
		return
	}

	title, content, image, errMsg := s.parsePostForm(r)
	if errMsg != "" {
		writeJSONError(w, http.StatusBadRequest, errMsg)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		writeJSONError(w, http.StatusNotFound, "Not found.")
		return
	}

	post.Title = title
	post.Content = content
	if image != "" {
		// An omitted image part keeps the stored one
		post.Image = image
	}
	s.posts[id] = post
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Not found.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		writeJSONError(w, http.StatusNotFound, "Not found.")
		return
	}
	delete(s.posts, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data, ok := s.media[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}

// parsePostForm extracts the multipart fields. It returns the stored
// media path for an uploaded image, or "" when no image part was sent.
func (s *Server) parsePostForm(r *http.Request) (title, content, image, errMsg string) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return "", "", "", "expected multipart form data"
	}

	title = r.FormValue("title")
	content = r.FormValue("content")

	file, header, err := r.FormFile("image")
	if err != nil {
		// No image part at all
		return title, content, "", ""
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", "", "reading image upload"
	}

	name := uuid.NewString() + filepath.Ext(header.Filename)
	path := "/media/post_images/" + name

	s.mu.Lock()
	s.media[path] = data
	s.mu.Unlock()

	return title, content, path, ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
