// ABOUTME: Admin CLI for managing blog posts against the content API
// ABOUTME: Stores the login session in a local file and talks to the API directly

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/makblog/blogfront/internal/apiclient"
	"github.com/makblog/blogfront/internal/session"
)

const banner = `
 _     _             __                 _
| |__ | | ___   __ _/ _|_ __ ___  _ __ | |_
| '_ \| |/ _ \ / _' | |_| '__/ _ \| '_ \| __|
| |_) | | (_) | (_| |  _| | | (_) | | | | |_
|_.__/|_|\___/ \__, |_| |_|  \___/|_| |_|\__|
               |___/        admin
`

const requestTimeout = 15 * time.Second

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// BLOG_API_URL points at the content API backend
	apiURL := os.Getenv("BLOG_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8000"
	}
	sessionPath := os.Getenv("BLOG_SESSION_FILE")
	if sessionPath == "" {
		sessionPath = session.DefaultSessionPath()
	}

	storage := session.NewFileStorage(sessionPath)

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "login":
		err = cmdLogin(apiURL, storage, args)
	case "logout":
		err = cmdLogout(storage)
	case "status":
		err = cmdStatus(apiURL, storage, sessionPath)
	case "posts":
		err = cmdPosts(apiURL, storage, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: blogfront-admin <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  login [username]        Sign in and store the session")
	fmt.Println("  logout                  Discard the stored session")
	fmt.Println("  status                  Show API reachability and the signed-in user")
	fmt.Println("  posts                   List all posts")
	fmt.Println("  posts list              List all posts")
	fmt.Println("  posts show <id>         Show a single post")
	fmt.Println("  posts create            Create a post (--title, --content, --image)")
	fmt.Println("  posts update <id>       Update a post (--title, --content, --image)")
	fmt.Println("  posts delete <id>       Delete a post (asks for confirmation)")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  BLOG_API_URL            Content API base URL (default: http://localhost:8000)")
	fmt.Println("  BLOG_SESSION_FILE       Session file path (default: XDG data dir)")
	fmt.Println()
	yellow.Println("Examples:")
	fmt.Println("  blogfront-admin login admin")
	fmt.Println("  blogfront-admin posts create --title 'Hello' --content 'First post' --image cover.png")
	fmt.Println("  blogfront-admin posts delete 3")
	fmt.Println()
}

// newClient builds an API client that reads the bearer token from the
// stored session on every request.
func newClient(apiURL string, storage session.Storage) (*apiclient.Client, *session.Store, error) {
	api, err := apiclient.New(apiURL, requestTimeout, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid API URL %q: %w", apiURL, err)
	}
	store := session.NewStore(storage, api)
	return api.WithTokenSource(store), store, nil
}

func cmdLogin(apiURL string, storage session.Storage, args []string) error {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		fmt.Print("Username: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return fmt.Errorf("username is required")
	}

	fmt.Print("Password: ")
	password, err := readPassword()
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	_, store, err := newClient(apiURL, storage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if _, err := store.Authenticate(ctx, username, password); err != nil {
		var authErr *apiclient.AuthError
		if errors.As(err, &authErr) {
			return fmt.Errorf("invalid username or password")
		}
		return fmt.Errorf("login failed: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Signed in as %s\n", username)
	return nil
}

// readPassword hides the input when stdin is a terminal, and falls back
// to a plain line read when it is not (pipes, CI).
func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func cmdLogout(storage session.Storage) error {
	if err := storage.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	fmt.Println("Signed out.")
	return nil
}

func cmdStatus(apiURL string, storage session.Storage, sessionPath string) error {
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()

	api, store, err := newClient(apiURL, storage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	// Reachability: the public list endpoint needs no token
	if _, err := api.ListPosts(ctx); err != nil {
		yellow.Printf("  API:      ")
		color.Red("UNREACHABLE (%v)\n", err)
	} else {
		green.Printf("  API:      ")
		fmt.Printf("connected to %s\n", apiURL)
	}

	if store.Authenticated() {
		green.Printf("  Identity: ")
		fmt.Println(store.CurrentUser())
	} else {
		yellow.Printf("  Identity: ")
		fmt.Println("(not signed in - run: blogfront-admin login)")
	}
	gray := color.New(color.FgHiBlack)
	gray.Printf("  Session:  %s\n", sessionPath)

	fmt.Println()
	return nil
}

// cmdPosts handles posts subcommands
func cmdPosts(apiURL string, storage session.Storage, args []string) error {
	// Default to list
	subcmd := "list"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	api, store, err := newClient(apiURL, storage)
	if err != nil {
		return err
	}

	switch subcmd {
	case "list":
		return cmdPostsList(api)
	case "show":
		return cmdPostsShow(api, args)
	case "create":
		return cmdPostsCreate(api, store, args)
	case "update":
		return cmdPostsUpdate(api, store, args)
	case "delete":
		return cmdPostsDelete(api, store, args)
	default:
		return fmt.Errorf("unknown posts subcommand: %s", subcmd)
	}
}

func cmdPostsList(api *apiclient.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	posts, err := api.ListPosts(ctx)
	if err != nil {
		return fmt.Errorf("listing posts: %w", err)
	}

	if len(posts) == 0 {
		fmt.Println("No posts.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCREATED\tIMAGE")
	for _, p := range posts {
		image := "-"
		if p.Image != "" {
			image = p.Image
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Title, p.CreatedAt.Format("2006-01-02"), image)
	}
	return w.Flush()
}

func cmdPostsShow(api *apiclient.Client, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	post, err := api.GetPost(ctx, id)
	if errors.Is(err, apiclient.ErrPostNotFound) {
		return fmt.Errorf("post %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("fetching post: %w", err)
	}

	cyan := color.New(color.FgCyan, color.Bold)
	gray := color.New(color.FgHiBlack)

	cyan.Println(post.Title)
	gray.Printf("#%d · %s", post.ID, post.CreatedAt.Format("January 2, 2006"))
	if post.Image != "" {
		gray.Printf(" · %s", post.Image)
	}
	fmt.Println()
	fmt.Println()
	fmt.Println(post.Content)
	return nil
}

func cmdPostsCreate(api *apiclient.Client, store *session.Store, args []string) error {
	if !store.Authenticated() {
		return fmt.Errorf("not signed in (run: blogfront-admin login)")
	}

	fs := flag.NewFlagSet("posts create", flag.ContinueOnError)
	title := fs.String("title", "", "post title (required)")
	content := fs.String("content", "", "post body (required)")
	imagePath := fs.String("image", "", "path to a header image")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" || *content == "" {
		return fmt.Errorf("--title and --content are required")
	}

	fields := apiclient.PostFields{Title: *title, Content: *content}
	closeImage, err := attachImage(&fields, *imagePath)
	if err != nil {
		return err
	}
	defer closeImage()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	post, err := api.CreatePost(ctx, fields)
	if err != nil {
		return fmt.Errorf("creating post: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Created post %d: %s\n", post.ID, post.Title)
	return nil
}

func cmdPostsUpdate(api *apiclient.Client, store *session.Store, args []string) error {
	if !store.Authenticated() {
		return fmt.Errorf("not signed in (run: blogfront-admin login)")
	}

	id, err := parseID(args)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("posts update", flag.ContinueOnError)
	title := fs.String("title", "", "new title")
	content := fs.String("content", "", "new body")
	imagePath := fs.String("image", "", "replacement header image (omit to keep the current one)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	// Start from the current post so partial flags work
	current, err := api.GetPost(ctx, id)
	if errors.Is(err, apiclient.ErrPostNotFound) {
		return fmt.Errorf("post %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("fetching post: %w", err)
	}

	fields := apiclient.PostFields{Title: current.Title, Content: current.Content}
	if *title != "" {
		fields.Title = *title
	}
	if *content != "" {
		fields.Content = *content
	}
	closeImage, err := attachImage(&fields, *imagePath)
	if err != nil {
		return err
	}
	defer closeImage()

	post, err := api.UpdatePost(ctx, id, fields)
	if err != nil {
		return fmt.Errorf("updating post: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Updated post %d: %s\n", post.ID, post.Title)
	return nil
}

func cmdPostsDelete(api *apiclient.Client, store *session.Store, args []string) error {
	if !store.Authenticated() {
		return fmt.Errorf("not signed in (run: blogfront-admin login)")
	}

	id, err := parseID(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	post, err := api.GetPost(ctx, id)
	if errors.Is(err, apiclient.ErrPostNotFound) {
		return fmt.Errorf("post %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("fetching post: %w", err)
	}

	fmt.Printf("Delete %q (post %d)? [y/N] ", post.Title, post.ID)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading confirmation: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		fmt.Println("Aborted.")
		return nil
	}

	if err := api.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Deleted post %d\n", id)
	return nil
}

// attachImage opens imagePath and wires it into fields. The returned
// func closes the file; it is a no-op when no image was given.
func attachImage(fields *apiclient.PostFields, imagePath string) (func(), error) {
	if imagePath == "" {
		return func() {}, nil
	}
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	fields.Image = &apiclient.ImageUpload{
		Filename: filepath.Base(imagePath),
		Reader:   f,
	}
	return func() { f.Close() }, nil
}

func parseID(args []string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("post ID is required")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post ID: %s", args[0])
	}
	return id, nil
}
