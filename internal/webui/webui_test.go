// ABOUTME: Tests for the web UI server against a fake upstream API
// ABOUTME: Covers public pages, the route guard, login/logout, and the admin flows

package webui

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makblog/blogfront/internal/apiclient"
	"github.com/makblog/blogfront/internal/fakeapi"
)

var testSecret = []byte("blogfront-webui-test-secret-32b!")

type fixture struct {
	fake *fakeapi.Server
	ui   *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fake := fakeapi.New(fakeapi.Credentials{Username: "admin", Password: "correct"}, testSecret)
	upstream := httptest.NewServer(fake.Handler())
	t.Cleanup(upstream.Close)

	api, err := apiclient.New(upstream.URL, 5*time.Second, nil)
	require.NoError(t, err)

	srv, err := New(api, Config{})
	require.NoError(t, err)

	ui := httptest.NewServer(srv.Handler())
	t.Cleanup(ui.Close)

	return &fixture{fake: fake, ui: ui}
}

// browser returns a client with a cookie jar, like a real browser tab.
func browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// noRedirect stops the client at the first redirect so its target can
// be asserted.
func noRedirect(c *http.Client) *http.Client {
	clone := *c
	clone.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &clone
}

func get(t *testing.T, c *http.Client, url string) (*http.Response, string) {
	t.Helper()
	resp, err := c.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func postForm(t *testing.T, c *http.Client, target string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := c.PostForm(target, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func login(t *testing.T, f *fixture, c *http.Client) {
	t.Helper()
	resp, body := postForm(t, c, f.ui.URL+"/login", url.Values{
		"username": {"admin"},
		"password": {"correct"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Admin Console", "login should land on the admin page")
}

var viewIDPattern = regexp.MustCompile(`/admin/view/([0-9a-f-]+)/`)

// mountAdmin loads /admin and extracts the console view ID.
func mountAdmin(t *testing.T, f *fixture, c *http.Client) (viewID, body string) {
	t.Helper()
	resp, body := get(t, c, f.ui.URL+"/admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	m := viewIDPattern.FindStringSubmatch(body)
	require.NotNil(t, m, "admin page should reference its view ID")
	return m[1], body
}

func TestHome_RendersPosts(t *testing.T) {
	f := newFixture(t)
	f.fake.Seed("Hello World", "first body", "")
	f.fake.Seed("Second Post", "second body", "/media/post_images/x.png")

	resp, body := get(t, browser(t), f.ui.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Hello World")
	assert.Contains(t, body, "Second Post")
	assert.Contains(t, body, "/media/post_images/x.png")
}

func TestHome_UpstreamDownRendersNoCards(t *testing.T) {
	fake := fakeapi.New(fakeapi.Credentials{Username: "admin", Password: "correct"}, testSecret)
	upstream := httptest.NewServer(fake.Handler())

	api, err := apiclient.New(upstream.URL, time.Second, nil)
	require.NoError(t, err)
	srv, err := New(api, Config{})
	require.NoError(t, err)
	ui := httptest.NewServer(srv.Handler())
	defer ui.Close()

	upstream.Close() // upstream gone before the page loads

	resp, body := get(t, browser(t), ui.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Latest Posts")
	assert.NotContains(t, body, "card\"")
}

func TestPostDetail_RendersMarkdown(t *testing.T) {
	f := newFixture(t)
	id := f.fake.Seed("Formatted", "Some **bold** text", "")

	resp, body := get(t, browser(t), f.ui.URL+"/post/"+strconv.Itoa(id))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Formatted")
	assert.Contains(t, body, "<strong>bold</strong>")
}

func TestPostDetail_NotFoundIsTerminalState(t *testing.T) {
	f := newFixture(t)

	resp, body := get(t, browser(t), f.ui.URL+"/post/999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Post not found")
	assert.Contains(t, body, `href="/"`)
}

func TestRouteGuard_DeniesWithoutToken(t *testing.T) {
	f := newFixture(t)

	resp, _ := get(t, noRedirect(browser(t)), f.ui.URL+"/admin")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLogin_RejectedCredentials(t *testing.T) {
	f := newFixture(t)
	c := browser(t)

	resp, body := postForm(t, c, f.ui.URL+"/login", url.Values{
		"username": {"admin"},
		"password": {"wrong"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or password")

	// No token was persisted; the guard still denies
	resp, _ = get(t, noRedirect(c), f.ui.URL+"/admin")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestLoginLogoutFlow(t *testing.T) {
	f := newFixture(t)
	c := browser(t)

	login(t, f, c)

	_, body := mountAdmin(t, f, c)
	assert.Contains(t, body, "Signed in as <strong>admin</strong>")

	resp, _ := postForm(t, noRedirect(c), f.ui.URL+"/logout", url.Values{})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, _ = get(t, noRedirect(c), f.ui.URL+"/admin")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode, "guard must deny after logout")
}

func TestLoginPage_SkippedWhenAuthenticated(t *testing.T) {
	f := newFixture(t)
	c := browser(t)
	login(t, f, c)

	resp, _ := get(t, noRedirect(c), f.ui.URL+"/login")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
}

func TestAdminDashboard_ShowsPostCount(t *testing.T) {
	f := newFixture(t)
	f.fake.Seed("One", "a", "")
	f.fake.Seed("Two", "b", "")
	c := browser(t)
	login(t, f, c)

	_, body := mountAdmin(t, f, c)
	assert.Contains(t, body, "Total Posts")
	assert.Contains(t, body, ">2<")
}

func TestTabSwitch_UsesCachedCollection(t *testing.T) {
	f := newFixture(t)
	f.fake.Seed("Cached Post", "a", "")
	c := browser(t)
	login(t, f, c)

	vid, _ := mountAdmin(t, f, c)

	// Post added upstream after mount must not appear: tabs never re-fetch
	f.fake.Seed("Late Arrival", "b", "")

	resp, body := get(t, c, f.ui.URL+"/admin/view/"+vid+"/tab/posts")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Cached Post")
	assert.NotContains(t, body, "Late Arrival")
}

func TestCreatePostFlow(t *testing.T) {
	f := newFixture(t)
	c := browser(t)
	login(t, f, c)
	vid, _ := mountAdmin(t, f, c)

	// Open the create modal
	resp, body := get(t, c, f.ui.URL+"/admin/view/"+vid+"/posts/new")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "New Post")

	// Submit without an image
	resp, body = postMultipart(t, c, f.ui.URL+"/admin/view/"+vid+"/posts/submit", "T", "C", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "T", "refreshed table should include the new post")
	assert.Equal(t, 1, f.fake.PostCount())
}

func TestEditPostFlow_KeepsImageWhenNotReplaced(t *testing.T) {
	f := newFixture(t)
	id := f.fake.Seed("Original", "body", "/media/post_images/keep.png")
	c := browser(t)
	login(t, f, c)
	vid, _ := mountAdmin(t, f, c)

	// Open the edit modal: pre-filled, current image previewed
	resp, body := get(t, c, f.ui.URL+"/admin/view/"+vid+"/posts/"+strconv.Itoa(id)+"/edit")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Edit Post")
	assert.Contains(t, body, `value="Original"`)
	assert.Contains(t, body, "/media/post_images/keep.png")

	// Submit with no replacement image
	resp, body = postMultipart(t, c, f.ui.URL+"/admin/view/"+vid+"/posts/submit", "Renamed", "new body", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Renamed")

	stored, ok := f.fake.GetStored(id)
	require.True(t, ok)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Equal(t, "/media/post_images/keep.png", stored.Image, "stored image must survive an update without a new upload")
}

func TestEditPost_FetchFailureShowsNotice(t *testing.T) {
	f := newFixture(t)
	f.fake.Seed("One", "a", "")
	c := browser(t)
	login(t, f, c)
	vid, _ := mountAdmin(t, f, c)

	resp, body := get(t, c, f.ui.URL+"/admin/view/"+vid+"/posts/999/edit")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Failed to fetch post details")
	assert.NotContains(t, body, "Edit Post", "modal must not open when the fetch fails")
}

func TestDeletePostFlow(t *testing.T) {
	f := newFixture(t)
	id := f.fake.Seed("Doomed", "a", "")
	f.fake.Seed("Survivor", "b", "")
	c := browser(t)
	login(t, f, c)
	vid, _ := mountAdmin(t, f, c)

	// Confirmation step first
	resp, body := get(t, c, f.ui.URL+"/admin/view/"+vid+"/posts/"+strconv.Itoa(id)+"/confirm")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Doomed")
	assert.Contains(t, body, "Are you sure")
	assert.Equal(t, 2, f.fake.PostCount(), "confirmation must not delete anything")

	// Confirmed delete splices the cached table
	resp, err := c.Post(f.ui.URL+"/admin/view/"+vid+"/posts/"+strconv.Itoa(id)+"/delete", "", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(raw), "Doomed")
	assert.Contains(t, string(raw), "Survivor")
	assert.Equal(t, 1, f.fake.PostCount())
}

func TestExpiredView_ForcesReload(t *testing.T) {
	f := newFixture(t)
	c := browser(t)
	login(t, f, c)

	resp, _ := get(t, c, f.ui.URL+"/admin/view/00000000-0000-0000-0000-000000000000/tab/posts")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("HX-Refresh"))
}

func TestMediaProxy(t *testing.T) {
	f := newFixture(t)

	// Upload an image through the admin flow, then fetch it via /media
	c := browser(t)
	login(t, f, c)
	vid, _ := mountAdmin(t, f, c)

	_, _ = get(t, c, f.ui.URL+"/admin/view/"+vid+"/posts/new")
	resp, _ := postMultipart(t, c, f.ui.URL+"/admin/view/"+vid+"/posts/submit", "Pic", "c", "cover.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stored, ok := f.fake.GetStored(1)
	require.True(t, ok)
	require.NotEmpty(t, stored.Image)

	resp, body := get(t, c, f.ui.URL+stored.Image)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "png-bytes", body)
}

// postMultipart submits the post form. imageName == "" omits the image
// part entirely.
func postMultipart(t *testing.T, c *http.Client, target, title, content, imageName string) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", title))
	require.NoError(t, w.WriteField("content", content))
	if imageName != "" {
		part, err := w.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	resp, err := c.Post(target, w.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

