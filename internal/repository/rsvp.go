package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/raffleworks/guestlist/internal/domain"
	"github.com/raffleworks/guestlist/internal/repository/dao"
)

// ErrMalformedRecord flags an RSVP payload without a member object or a
// guest count. The run aborts on it: the capacity math needs every record.
var ErrMalformedRecord = errors.New("malformed rsvp record")

type MeetupDAO interface {
	ScanRsvps(ctx context.Context, groupID, eventID string) ([]dao.RsvpPayload, error)
}

type RsvpRepository struct {
	dao     MeetupDAO
	groupID string
	eventID string
}

func NewRsvpRepository(dao MeetupDAO, groupID, eventID string) *RsvpRepository {
	return &RsvpRepository{
		dao:     dao,
		groupID: groupID,
		eventID: eventID,
	}
}

// FetchRsvps scans the whole feed and flattens each payload into the
// canonical shape. No deduplication happens here; the feed carries at most
// one active record per member.
func (r *RsvpRepository) FetchRsvps(ctx context.Context) ([]domain.Rsvp, error) {
	payloads, err := r.dao.ScanRsvps(ctx, r.groupID, r.eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ScanRsvps -> %w", err)
	}

	rsvps := make([]domain.Rsvp, 0, len(payloads))
	for i, p := range payloads {
		if p.Member == nil {
			return nil, fmt.Errorf("rsvp %d: missing member: %w", i, ErrMalformedRecord)
		}
		if p.Guests == nil {
			return nil, fmt.Errorf("rsvp %d: missing guest count: %w", i, ErrMalformedRecord)
		}

		rsvps = append(rsvps, domain.Rsvp{
			MemberID:   p.Member.ID,
			MemberName: p.Member.Name,
			Response:   p.Response,
			Attendees:  *p.Guests + 1,
		})
	}

	return rsvps, nil
}
