package gateway

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/naka-gawa/devdash/internal/session"
	"golang.org/x/oauth2"
)

// LoginPath is where the user is sent when the API rejects their session.
const LoginPath = "/login"

// RequestHook runs on every outgoing request before it is transmitted.
type RequestHook func(*http.Request) error

// ResponseHook runs on every response before calling code sees it.
type ResponseHook func(*http.Response) error

// Redirector sends the user to another entry point of the application.
type Redirector interface {
	Redirect(path string)
}

// RedirectFunc adapts a plain function to Redirector.
type RedirectFunc func(path string)

func (f RedirectFunc) Redirect(path string) { f(path) }

// Chain is an http.RoundTripper that runs an ordered list of request hooks,
// the base transport, then an ordered list of response hooks.
type Chain struct {
	Base     http.RoundTripper
	Request  []RequestHook
	Response []ResponseHook
}

func (c *Chain) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	r := req.Clone(req.Context())
	for _, hook := range c.Request {
		if err := hook(r); err != nil {
			return nil, err
		}
	}

	resp, err := c.base().RoundTrip(r)
	if err != nil {
		return nil, err
	}

	for _, hook := range c.Response {
		if err := hook(resp); err != nil {
			resp.Body.Close()
			return nil, err
		}
	}
	return resp, nil
}

func (c *Chain) base() http.RoundTripper {
	if c.Base != nil {
		return c.Base
	}
	return http.DefaultTransport
}

// BearerAuth attaches the current session token as a bearer credential.
// Without a stored token the request goes out unauthenticated.
func BearerAuth(src oauth2.TokenSource) RequestHook {
	return func(r *http.Request) error {
		tok, err := src.Token()
		if errors.Is(err, session.ErrNoToken) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read session token: %w", err)
		}
		tok.SetAuthHeader(r)
		return nil
	}
}

// RequestID tags requests with an X-Request-ID unless one is already set.
func RequestID() RequestHook {
	return func(r *http.Request) error {
		if r.Header.Get("X-Request-ID") == "" {
			r.Header.Set("X-Request-ID", uuid.NewString())
		}
		return nil
	}
}

// SessionExpiry tears down the stored session and redirects to LoginPath
// whenever the API answers 401, whatever endpoint produced it. The response
// itself is passed through so the caller still sees the failure.
func SessionExpiry(store session.Store, redirector Redirector) ResponseHook {
	return func(resp *http.Response) error {
		if resp.StatusCode != http.StatusUnauthorized {
			return nil
		}
		err := session.Clear(store)
		if redirector != nil {
			redirector.Redirect(LoginPath)
		}
		if err != nil {
			return fmt.Errorf("failed to clear expired session: %w", err)
		}
		return nil
	}
}

// LogResponses writes one line per completed request.
func LogResponses(logger *log.Logger) ResponseHook {
	return func(resp *http.Response) error {
		if resp.Request != nil {
			logger.Printf("%s %s -> %d", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode)
		}
		return nil
	}
}
