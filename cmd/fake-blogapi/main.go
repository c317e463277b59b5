// ABOUTME: In-memory stand-in for the content API, for local development and E2E testing.
// ABOUTME: Usage: fake-blogapi [-addr localhost:8000] [-user admin] [-pass admin] [-seed]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/makblog/blogfront/internal/fakeapi"
)

func main() {
	addr := flag.String("addr", "localhost:8000", "listen address")
	user := flag.String("user", "admin", "accepted username")
	pass := flag.String("pass", "admin", "accepted password")
	secret := flag.String("secret", "fake-blogapi-dev-secret", "JWT signing secret")
	seed := flag.Bool("seed", false, "start with a few sample posts")
	flag.Parse()

	if err := run(*addr, *user, *pass, *secret, *seed); err != nil {
		log.Fatal(err)
	}
}

func run(addr, user, pass, secret string, seed bool) error {
	api := fakeapi.New(fakeapi.Credentials{Username: user, Password: pass}, []byte(secret))

	if seed {
		api.Seed("Welcome", "This fake API started with sample content. Log in with the credentials you passed on the command line to manage it.", "")
		api.Seed("Markdown works", "Posts render **markdown**, including lists:\n\n- one\n- two", "")
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: api.Handler(),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("fake-blogapi listening on %s (user=%s)\n", addr, user)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
