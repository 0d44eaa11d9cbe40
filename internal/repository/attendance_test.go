package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raffleworks/guestlist/internal/domain"
	"github.com/raffleworks/guestlist/internal/repository/dao"
)

type fakeAttendanceDAO struct {
	rows []dao.AttendanceRow
	err  error
}

func (f *fakeAttendanceDAO) ListAttendances(context.Context) ([]dao.AttendanceRow, error) {
	return f.rows, f.err
}

func TestCountAttendances(t *testing.T) {
	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeAttendanceDAO{rows: []dao.AttendanceRow{
		// Member 1 re-submitted for event 100: the later noshow overrides
		// the earlier attended row.
		{GroupID: "gophers", EventID: "100", MemberID: 1, Status: "attended", RequestedAt: base},
		{GroupID: "gophers", EventID: "100", MemberID: 1, Status: "noshow", RequestedAt: base.Add(time.Hour)},
		{GroupID: "gophers", EventID: "101", MemberID: 1, Status: "attended", RequestedAt: base},

		// Member 2: older duplicate arrives after the newer row.
		{GroupID: "gophers", EventID: "100", MemberID: 2, Status: "attended", RequestedAt: base.Add(time.Hour)},
		{GroupID: "gophers", EventID: "100", MemberID: 2, Status: "noshow", RequestedAt: base},
		{GroupID: "gophers", EventID: "102", MemberID: 2, Status: "attended", RequestedAt: base},

		// Member 3 never attended, so no count at all.
		{GroupID: "gophers", EventID: "100", MemberID: 3, Status: "noshow", RequestedAt: base},
	}}
	repo := NewAttendanceRepository(fake)

	got, err := repo.CountAttendances(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.AttendanceCount{
		{MemberID: 1, Attendances: 1},
		{MemberID: 2, Attendances: 2},
	}, got)
}

func TestCountAttendancesTimestampTie(t *testing.T) {
	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeAttendanceDAO{rows: []dao.AttendanceRow{
		{GroupID: "gophers", EventID: "100", MemberID: 1, Status: "noshow", RequestedAt: base},
		{GroupID: "gophers", EventID: "100", MemberID: 1, Status: "attended", RequestedAt: base},
	}}
	repo := NewAttendanceRepository(fake)

	got, err := repo.CountAttendances(context.Background())
	require.NoError(t, err)

	// Most recently observed row wins the tie.
	assert.Equal(t, []domain.AttendanceCount{{MemberID: 1, Attendances: 1}}, got)
}

func TestCountAttendancesEmptyLog(t *testing.T) {
	repo := NewAttendanceRepository(&fakeAttendanceDAO{})

	got, err := repo.CountAttendances(context.Background())
	require.NoError(t, err)

	assert.Empty(t, got)
}

func TestCountAttendancesSourceFailure(t *testing.T) {
	fake := &fakeAttendanceDAO{
		err: fmt.Errorf("%w: connection refused", dao.ErrAttendanceSourceUnavailable),
	}
	repo := NewAttendanceRepository(fake)

	_, err := repo.CountAttendances(context.Background())

	assert.ErrorIs(t, err, ErrAggregationSource)
}
