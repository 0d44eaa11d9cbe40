package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrTokenNotFound = errors.New("token not found")

// CachedToken is the persisted OAuth token. Key plays the role of a blob
// name so several jobs can share the table.
type CachedToken struct {
	Key          string `gorm:"primaryKey"`
	AccessToken  string `gorm:"not null"`
	TokenType    string
	RefreshToken string
	Expiry       time.Time
	UpdatedAt    time.Time
}

func (CachedToken) TableName() string {
	return "token_cache"
}

type TokenDAO struct {
	db *gorm.DB
}

func NewTokenDAO(db *gorm.DB) *TokenDAO {
	return &TokenDAO{
		db: db,
	}
}

func (d *TokenDAO) Find(ctx context.Context, key string) (CachedToken, error) {
	var token CachedToken

	result := d.db.WithContext(ctx).First(&token, "key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CachedToken{}, ErrTokenNotFound
		}

		return CachedToken{}, result.Error
	}

	return token, nil
}

func (d *TokenDAO) Upsert(ctx context.Context, token CachedToken) error {
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&token)

	return result.Error
}
