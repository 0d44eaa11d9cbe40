package domain

// RaffleEntry is one RSVP joined with the member's attendance history.
// Attendances carries the +1 smoothing term, so it is never below 1.
type RaffleEntry struct {
	MemberID    int64
	MemberName  string
	Response    string
	Attendances int
}

type Capacity struct {
	TicketsTaken     int
	TicketsAvailable int
	WaitlistTotal    int
}

// Promotion is the receipt returned by the guestlist endpoint.
type Promotion struct {
	MemberID   int64
	MemberName string
}

type RaffleResult struct {
	Capacity Capacity
	Winners  []RaffleEntry
}
