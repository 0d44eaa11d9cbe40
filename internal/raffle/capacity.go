package raffle

import "github.com/raffleworks/guestlist/internal/domain"

// ComputeCapacity derives ticket usage from the normalized RSVP set.
// All three totals are in ticket units: one RSVP with guests takes
// several tickets.
func ComputeCapacity(rsvps []domain.Rsvp, ticketsMax int) domain.Capacity {
	var taken, waitlisted int
	for _, r := range rsvps {
		switch r.Response {
		case domain.ResponseYes:
			taken += r.Attendees
		case domain.ResponseWaitlist:
			waitlisted += r.Attendees
		}
	}

	available := ticketsMax - taken
	if available < 0 {
		available = 0
	}

	return domain.Capacity{
		TicketsTaken:     taken,
		TicketsAvailable: available,
		WaitlistTotal:    waitlisted,
	}
}
