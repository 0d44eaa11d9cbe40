package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// TokenCache persists OAuth tokens between runs. The initial grant happens
// out of band, so the cache must already hold a token when the manager
// first asks for one.
type TokenCache interface {
	Load(ctx context.Context) (*oauth2.Token, error)
	Save(ctx context.Context, token *oauth2.Token) error
}

// TokenManager hands out the current access token. Expired tokens are
// refreshed through the oauth2 config and the rotated token is written
// back to the cache.
type TokenManager struct {
	conf  *oauth2.Config
	cache TokenCache

	source oauth2.TokenSource
	last   *oauth2.Token
}

func NewTokenManager(conf *oauth2.Config, cache TokenCache) *TokenManager {
	return &TokenManager{
		conf:  conf,
		cache: cache,
	}
}

func (m *TokenManager) Token(ctx context.Context) (string, error) {
	if m.source == nil {
		stored, err := m.cache.Load(ctx)
		if err != nil {
			return "", fmt.Errorf("m.cache.Load -> %w", err)
		}

		m.last = stored
		m.source = m.conf.TokenSource(ctx, stored)
	}

	token, err := m.source.Token()
	if err != nil {
		return "", fmt.Errorf("m.source.Token -> %w", err)
	}

	if token.AccessToken != m.last.AccessToken {
		if err = m.cache.Save(ctx, token); err != nil {
			return "", fmt.Errorf("m.cache.Save -> %w", err)
		}
		m.last = token
	}

	return token.AccessToken, nil
}
