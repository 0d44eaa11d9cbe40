package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/raffleworks/guestlist/internal/domain"
	"github.com/raffleworks/guestlist/internal/repository/dao"
)

var ErrAggregationSource = dao.ErrAttendanceSourceUnavailable

type AttendanceDAO interface {
	ListAttendances(ctx context.Context) ([]dao.AttendanceRow, error)
}

type AttendanceRepository struct {
	dao AttendanceDAO
}

func NewAttendanceRepository(dao AttendanceDAO) *AttendanceRepository {
	return &AttendanceRepository{
		dao: dao,
	}
}

// CountAttendances reduces the raw check-in log to one count per member.
// Re-submissions for the same (group, event, member) collapse to the row
// with the latest requested_at, most recently observed row winning ties.
// Only rows whose final status is "attended" count, so members who never
// attended are absent from the result entirely.
func (r *AttendanceRepository) CountAttendances(ctx context.Context) ([]domain.AttendanceCount, error) {
	rows, err := r.dao.ListAttendances(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAttendances -> %w", err)
	}

	type visitKey struct {
		groupID  string
		eventID  string
		memberID int64
	}

	latest := make(map[visitKey]dao.AttendanceRow, len(rows))
	for _, row := range rows {
		key := visitKey{row.GroupID, row.EventID, row.MemberID}
		if cur, ok := latest[key]; ok && row.RequestedAt.Before(cur.RequestedAt) {
			continue
		}
		latest[key] = row
	}

	counts := make(map[int64]int)
	for _, row := range latest {
		if row.Status == "attended" {
			counts[row.MemberID]++
		}
	}

	out := make([]domain.AttendanceCount, 0, len(counts))
	for memberID, n := range counts {
		out = append(out, domain.AttendanceCount{MemberID: memberID, Attendances: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MemberID < out[j].MemberID })

	return out, nil
}
