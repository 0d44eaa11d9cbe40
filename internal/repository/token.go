package repository

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/raffleworks/guestlist/internal/repository/dao"
)

var ErrTokenNotFound = dao.ErrTokenNotFound

type TokenDAO interface {
	Find(ctx context.Context, key string) (dao.CachedToken, error)
	Upsert(ctx context.Context, token dao.CachedToken) error
}

// TokenRepository persists OAuth tokens under a fixed key, playing the
// blob-store role for the token manager.
type TokenRepository struct {
	dao TokenDAO
	key string
}

func NewTokenRepository(dao TokenDAO, key string) *TokenRepository {
	return &TokenRepository{
		dao: dao,
		key: key,
	}
}

func (r *TokenRepository) Load(ctx context.Context) (*oauth2.Token, error) {
	found, err := r.dao.Find(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	return &oauth2.Token{
		AccessToken:  found.AccessToken,
		TokenType:    found.TokenType,
		RefreshToken: found.RefreshToken,
		Expiry:       found.Expiry,
	}, nil
}

func (r *TokenRepository) Save(ctx context.Context, token *oauth2.Token) error {
	err := r.dao.Upsert(ctx, dao.CachedToken{
		Key:          r.key,
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	})
	if err != nil {
		return fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return nil
}
