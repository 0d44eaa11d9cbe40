package domain

// AttendanceCount is how many past events a member actually attended.
// Members with no attended events have no count at all.
type AttendanceCount struct {
	MemberID    int64
	Attendances int
}
