// Package callback runs the short-lived loopback HTTP server that receives
// the OAuth provider's redirect during `devdash auth login`.
package callback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Path is the route the provider redirects back to.
const Path = "/callback"

// Result is what the provider handed back.
type Result struct {
	Code  string
	State string
}

// Listener accepts exactly one OAuth redirect.
type Listener struct {
	ln      net.Listener
	srv     *http.Server
	results chan Result
	errs    chan error
	logger  *log.Logger
}

// Listen binds addr (use "127.0.0.1:0" for any free port) and starts serving.
func Listen(addr string, logger *log.Logger) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen for OAuth callback on %s: %w", addr, err)
	}

	l := &Listener{
		ln:      ln,
		results: make(chan Result, 1),
		errs:    make(chan error, 1),
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Get(Path, l.handleCallback)
	l.srv = &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := l.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.logger.Printf("OAuth callback server stopped: %v", err)
		}
	}()
	return l, nil
}

// RedirectURI is the URL to register as the provider's redirect target.
func (l *Listener) RedirectURI() string {
	return "http://" + l.ln.Addr().String() + Path
}

func (l *Listener) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if msg := q.Get("error"); msg != "" {
		if desc := q.Get("error_description"); desc != "" {
			msg += ": " + desc
		}
		l.deliverErr(fmt.Errorf("authorization denied: %s", msg))
		http.Error(w, "Authorization failed. You can close this window.", http.StatusBadRequest)
		return
	}

	code, state := q.Get("code"), q.Get("state")
	if code == "" || state == "" {
		http.Error(w, "missing code or state", http.StatusBadRequest)
		return
	}

	select {
	case l.results <- Result{Code: code, State: state}:
	default:
		// A result was already delivered.
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "Signed in. You can close this window and return to the terminal.")
}

func (l *Listener) deliverErr(err error) {
	select {
	case l.errs <- err:
	default:
	}
}

// Wait blocks until the provider redirects back, the provider reports an
// error, or ctx is done.
func (l *Listener) Wait(ctx context.Context) (Result, error) {
	select {
	case res := <-l.results:
		return res, nil
	case err := <-l.errs:
		return Result{}, err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Close stops the server.
func (l *Listener) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return l.srv.Shutdown(ctx)
}
