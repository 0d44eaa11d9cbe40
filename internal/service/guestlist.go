package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/raffleworks/guestlist/internal/domain"
	"github.com/raffleworks/guestlist/internal/repository"
)

var ErrPromotionFailed = repository.ErrPromotionFailed

type GuestlistRepository interface {
	Promote(ctx context.Context, memberID int64) (domain.Promotion, error)
}

type GuestlistService struct {
	repo  GuestlistRepository
	apply bool
	delay time.Duration
}

func NewGuestlistService(repo GuestlistRepository, apply bool, delay time.Duration) *GuestlistService {
	return &GuestlistService{
		repo:  repo,
		apply: apply,
		delay: delay,
	}
}

// PromoteWinners moves each winner to the guestlist, pausing the configured
// delay after every call as a rate-limit courtesy. With the apply switch
// off it only reports what would happen. The first failure stops the loop;
// earlier promotions stand, there is no rollback or resume.
func (s *GuestlistService) PromoteWinners(ctx context.Context, winners []domain.RaffleEntry) error {
	if !s.apply {
		zap.L().Info("apply switch off, winners not promoted", zap.Int("winners", len(winners)))
		return nil
	}

	for _, winner := range winners {
		zap.L().Debug("requesting promotion", zap.Int64("member_id", winner.MemberID))

		promotion, err := s.repo.Promote(ctx, winner.MemberID)
		if err != nil {
			return fmt.Errorf("s.repo.Promote -> %w", err)
		}

		zap.L().Info("moved member to guestlist",
			zap.Int64("member_id", promotion.MemberID),
			zap.String("member_name", promotion.MemberName),
		)

		time.Sleep(s.delay)
	}

	return nil
}
