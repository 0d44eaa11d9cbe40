package domain

// Response values the RSVP feed carries. The set is open; the capacity math
// only cares about yes and waitlist.
const (
	ResponseYes      = "yes"
	ResponseNo       = "no"
	ResponseWaitlist = "waitlist"
)

type Rsvp struct {
	MemberID   int64
	MemberName string
	Response   string
	Attendees  int // guests + 1, tickets consumed by this RSVP
}
