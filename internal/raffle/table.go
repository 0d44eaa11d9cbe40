package raffle

import "github.com/raffleworks/guestlist/internal/domain"

// BuildTable pairs every RSVP with the member's attendance count. Members
// with no history count as zero, then every entry gets a +1 smoothing term
// so its raffle weight is at least 1. Input order is preserved and no RSVP
// is ever dropped.
func BuildTable(rsvps []domain.Rsvp, counts []domain.AttendanceCount) []domain.RaffleEntry {
	byMember := make(map[int64]int, len(counts))
	for _, c := range counts {
		byMember[c.MemberID] = c.Attendances
	}

	entries := make([]domain.RaffleEntry, 0, len(rsvps))
	for _, r := range rsvps {
		entries = append(entries, domain.RaffleEntry{
			MemberID:    r.MemberID,
			MemberName:  r.MemberName,
			Response:    r.Response,
			Attendances: byMember[r.MemberID] + 1,
		})
	}

	return entries
}

// Waitlist returns the entries still waiting for a ticket.
func Waitlist(entries []domain.RaffleEntry) []domain.RaffleEntry {
	var waiting []domain.RaffleEntry
	for _, e := range entries {
		if e.Response == domain.ResponseWaitlist {
			waiting = append(waiting, e)
		}
	}

	return waiting
}
