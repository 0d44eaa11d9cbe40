package service

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/raffleworks/guestlist/internal/domain"
	"github.com/raffleworks/guestlist/internal/raffle"
	"github.com/raffleworks/guestlist/internal/repository"
)

var (
	ErrMalformedRecord   = repository.ErrMalformedRecord
	ErrAggregationSource = repository.ErrAggregationSource
)

type RsvpRepository interface {
	FetchRsvps(ctx context.Context) ([]domain.Rsvp, error)
}

type AttendanceRepository interface {
	CountAttendances(ctx context.Context) ([]domain.AttendanceCount, error)
}

// Sampler draws k entries from the pool using the supplied randomness.
type Sampler interface {
	Draw(pool []domain.RaffleEntry, k int, rng *rand.Rand) []domain.RaffleEntry
}

type RaffleService struct {
	rsvps       RsvpRepository
	attendances AttendanceRepository
	sampler     Sampler
	rng         *rand.Rand
	ticketsMax  int
}

func NewRaffleService(rsvps RsvpRepository, attendances AttendanceRepository, sampler Sampler, rng *rand.Rand, ticketsMax int) *RaffleService {
	return &RaffleService{
		rsvps:       rsvps,
		attendances: attendances,
		sampler:     sampler,
		rng:         rng,
		ticketsMax:  ticketsMax,
	}
}

// Run executes one raffle: fetch RSVPs, size the remaining capacity, weigh
// the waitlist by attendance history and draw the winners. The draw runs
// even at zero capacity, it just comes back empty.
func (s *RaffleService) Run(ctx context.Context) (domain.RaffleResult, error) {
	zap.L().Info("requesting rsvps")
	rsvps, err := s.rsvps.FetchRsvps(ctx)
	if err != nil {
		return domain.RaffleResult{}, fmt.Errorf("s.rsvps.FetchRsvps -> %w", err)
	}

	capacity := raffle.ComputeCapacity(rsvps, s.ticketsMax)
	zap.L().Info("computed capacity",
		zap.Int("tickets_taken", capacity.TicketsTaken),
		zap.Int("tickets_available", capacity.TicketsAvailable),
		zap.Int("waitlist_total", capacity.WaitlistTotal),
	)

	zap.L().Info("counting attendances")
	counts, err := s.attendances.CountAttendances(ctx)
	if err != nil {
		return domain.RaffleResult{}, fmt.Errorf("s.attendances.CountAttendances -> %w", err)
	}

	zap.L().Info("building raffle table")
	pool := raffle.Waitlist(raffle.BuildTable(rsvps, counts))

	k := capacity.TicketsAvailable
	if capacity.WaitlistTotal < k {
		k = capacity.WaitlistTotal
	}

	zap.L().Info("selecting winners")
	winners := s.sampler.Draw(pool, k, s.rng)

	ids := make([]int64, 0, len(winners))
	for _, w := range winners {
		ids = append(ids, w.MemberID)
	}
	zap.L().Info("winners selected", zap.Int64s("member_ids", ids))

	return domain.RaffleResult{
		Capacity: capacity,
		Winners:  winners,
	}, nil
}
