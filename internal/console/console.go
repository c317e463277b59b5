// ABOUTME: Admin console state core: the post collection and the modal state machine
// ABOUTME: Drives create/edit/delete against the API gateway, one screen's worth of state

package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/makblog/blogfront/internal/apiclient"
)

// Tab identifies the active admin screen tab.
type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabPosts     Tab = "posts"
)

// Mode is the modal state. The machine is
// closed → create → closed and closed → edit → closed; edit can only
// be entered after the target post was fetched successfully.
type Mode string

const (
	ModeClosed Mode = "closed"
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// ErrSubmitInFlight is returned when a submit or delete is attempted
// while another one is still outstanding.
var ErrSubmitInFlight = errors.New("a submission is already in flight")

// ErrModalClosed is returned by Submit when no modal is open.
var ErrModalClosed = errors.New("no form is open")

// Gateway is the slice of the API client the console needs.
type Gateway interface {
	ListPosts(ctx context.Context) ([]apiclient.Post, error)
	GetPost(ctx context.Context, id int) (*apiclient.Post, error)
	CreatePost(ctx context.Context, fields apiclient.PostFields) (*apiclient.Post, error)
	UpdatePost(ctx context.Context, id int, fields apiclient.PostFields) (*apiclient.Post, error)
	DeletePost(ctx context.Context, id int) error
}

// Form holds the in-progress modal fields. Image is nil unless a
// replacement upload was chosen.
type Form struct {
	Title   string
	Content string
	Image   *apiclient.ImageUpload
}

// Console is one mounted admin screen. The collection is fetched once
// on mount and only re-fetched after a successful create or update;
// a delete splices the local slice without a round trip. Tab switches
// never re-fetch.
type Console struct {
	mu  sync.Mutex
	api Gateway
	log *slog.Logger

	posts  []apiclient.Post
	loaded bool

	activeTab Tab
	mode      Mode
	editingID int
	// previously stored image URI, shown as preview while editing
	currentImageURL string
	form            Form

	busy bool
	// bumped on every refresh and on unmount so a slow response
	// cannot overwrite newer state
	generation uint64
}

// New creates a console over the gateway. Call Mount to load the
// collection.
func New(api Gateway) *Console {
	return &Console{
		api:       api,
		log:       slog.Default().With("component", "console"),
		activeTab: TabDashboard,
		mode:      ModeClosed,
	}
}

// Mount performs the initial collection fetch.
func (c *Console) Mount(ctx context.Context) error {
	return c.Refresh(ctx)
}

// Refresh replaces the collection wholesale from the server. A
// response arriving after a newer refresh (or after Unmount) is
// dropped instead of clobbering current state.
func (c *Console) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	posts, err := c.api.ListPosts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.log.Debug("dropping stale post list", "generation", gen)
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetching posts: %w", err)
	}

	c.posts = posts
	c.loaded = true
	return nil
}

// Unmount invalidates any in-flight fetch so its response is discarded.
func (c *Console) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
}

// Posts returns a copy of the cached collection.
func (c *Console) Posts() []apiclient.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]apiclient.Post, len(c.posts))
	copy(out, c.posts)
	return out
}

// PostCount is the dashboard statistic derived live from the cache.
func (c *Console) PostCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.posts)
}

// Loaded reports whether the initial fetch has completed.
func (c *Console) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// ActiveTab returns the selected tab.
func (c *Console) ActiveTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTab
}

// SwitchTab changes the active tab. Deliberately no re-fetch.
func (c *Console) SwitchTab(tab Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tab == TabDashboard || tab == TabPosts {
		c.activeTab = tab
	}
}

// OpenCreate opens the modal in create mode with an empty form.
func (c *Console) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeCreate
	c.editingID = 0
	c.currentImageURL = ""
	c.form = Form{}
}

// OpenEdit fetches the target post and, only on success, opens the
// modal pre-filled. If the fetch fails the modal stays closed and the
// error is surfaced to the caller.
func (c *Console) OpenEdit(ctx context.Context, id int) error {
	post, err := c.api.GetPost(ctx, id)
	if err != nil {
		c.log.Error("failed to fetch post for editing", "id", id, "error", err)
		return fmt.Errorf("fetching post %d: %w", id, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeEdit
	c.editingID = id
	c.currentImageURL = post.Image
	c.form = Form{Title: post.Title, Content: post.Content}
	return nil
}

// SetForm updates the in-progress fields. image stays nil to keep the
// previously stored image.
func (c *Console) SetForm(title, content string, image *apiclient.ImageUpload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Title = title
	c.form.Content = content
	c.form.Image = image
}

// CloseModal resets all modal state. The collection is untouched.
func (c *Console) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetModalLocked()
}

func (c *Console) resetModalLocked() {
	c.mode = ModeClosed
	c.editingID = 0
	c.currentImageURL = ""
	c.form = Form{}
}

// Submit sends the open form to the server. On success the modal
// closes and the collection is re-fetched in full; on failure every
// piece of prior state stays intact so the user may retry. A second
// submit while one is outstanding returns ErrSubmitInFlight.
func (c *Console) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	mode := c.mode
	if mode == ModeClosed {
		c.mu.Unlock()
		return ErrModalClosed
	}
	id := c.editingID
	fields := apiclient.PostFields{
		Title:   c.form.Title,
		Content: c.form.Content,
		Image:   c.form.Image,
	}
	c.busy = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	var err error
	switch mode {
	case ModeCreate:
		_, err = c.api.CreatePost(ctx, fields)
	case ModeEdit:
		_, err = c.api.UpdatePost(ctx, id, fields)
	}
	if err != nil {
		c.log.Error("post submission failed", "mode", mode, "id", id, "error", err)
		return err
	}

	c.CloseModal()
	return c.Refresh(ctx)
}

// Delete removes the post server-side and splices it out of the local
// collection without a re-fetch. The confirmation step belongs to the
// caller; by the time Delete runs the user has already confirmed.
func (c *Console) Delete(ctx context.Context, id int) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.busy = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	if err := c.api.DeletePost(ctx, id); err != nil {
		c.log.Error("post delete failed", "id", id, "error", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.posts[:0]
	for _, p := range c.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.posts = kept
	return nil
}

// Busy reports whether a submit or delete is outstanding; the UI
// disables the triggering control while it is.
func (c *Console) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Mode returns the current modal mode.
func (c *Console) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// EditingID returns the post identifier being edited, 0 outside edit mode.
func (c *Console) EditingID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingID
}

// CurrentImageURL returns the stored image URI previewed in edit mode.
func (c *Console) CurrentImageURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentImageURL
}

// FormFields returns a copy of the in-progress form.
func (c *Console) FormFields() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}
