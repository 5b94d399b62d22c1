package session

import (
	"errors"

	"github.com/naka-gawa/devdash/internal/domain"
	"golang.org/x/oauth2"
)

// ErrNoToken is returned by TokenSource when no session is stored.
var ErrNoToken = errors.New("no session token stored")

// TokenSource is an oauth2.TokenSource backed by a Store. It re-reads the
// store on every call and never caches the token.
type TokenSource struct {
	store Store
}

var _ oauth2.TokenSource = (*TokenSource)(nil)

func NewTokenSource(store Store) *TokenSource {
	return &TokenSource{store: store}
}

// Token returns the stored bearer token, or ErrNoToken when there is none.
func (ts *TokenSource) Token() (*oauth2.Token, error) {
	v, ok, err := ts.store.Get(TokenKey)
	if err != nil {
		return nil, err
	}
	if !ok || v == "" {
		return nil, ErrNoToken
	}
	return &oauth2.Token{AccessToken: v, TokenType: "Bearer"}, nil
}

// Save persists the token from a successful callback or refresh.
func Save(store Store, resp *domain.AuthResponse) (*domain.Session, error) {
	if resp.AccessToken == "" {
		return nil, errors.New("auth response carried no access token")
	}
	if err := store.Set(TokenKey, resp.AccessToken); err != nil {
		return nil, err
	}
	return &domain.Session{Token: resp.AccessToken, User: resp.User}, nil
}

// Clear removes the stored token.
func Clear(store Store) error {
	return store.Delete(TokenKey)
}
