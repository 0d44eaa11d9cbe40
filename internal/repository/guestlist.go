package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/raffleworks/guestlist/internal/domain"
	"github.com/raffleworks/guestlist/internal/repository/dao"
)

// ErrPromotionFailed flags a guestlist update that did not go through.
// Promotions already applied stay applied.
var ErrPromotionFailed = errors.New("promotion failed")

type PromotionDAO interface {
	PromoteMember(ctx context.Context, memberID int64, eventID string) (dao.PromotionReceipt, error)
}

type GuestlistRepository struct {
	dao     PromotionDAO
	eventID string
}

func NewGuestlistRepository(dao PromotionDAO, eventID string) *GuestlistRepository {
	return &GuestlistRepository{
		dao:     dao,
		eventID: eventID,
	}
}

func (r *GuestlistRepository) Promote(ctx context.Context, memberID int64) (domain.Promotion, error) {
	receipt, err := r.dao.PromoteMember(ctx, memberID, r.eventID)
	if err != nil {
		return domain.Promotion{}, fmt.Errorf("%w for member %d: %w", ErrPromotionFailed, memberID, err)
	}

	return domain.Promotion{
		MemberID:   receipt.MemberID,
		MemberName: receipt.Name,
	}, nil
}
