package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrAttendanceSourceUnavailable flags the warehouse being unreachable or
// the attendances table missing.
var ErrAttendanceSourceUnavailable = errors.New("attendance source unavailable")

// AttendanceRow is one raw check-in record from the warehouse. The table is
// owned by the ingestion pipeline; this app only reads it.
type AttendanceRow struct {
	GroupID     string
	EventID     string
	MemberID    int64
	Status      string
	RequestedAt time.Time
}

type AttendanceDAO struct {
	db     *gorm.DB
	schema string
}

func NewAttendanceDAO(db *gorm.DB, schema string) *AttendanceDAO {
	return &AttendanceDAO{
		db:     db,
		schema: schema,
	}
}

func (d *AttendanceDAO) table() string {
	return d.schema + ".attendances"
}

// ListAttendances returns every check-in row across all time.
func (d *AttendanceDAO) ListAttendances(ctx context.Context) ([]AttendanceRow, error) {
	var rows []AttendanceRow

	result := d.db.WithContext(ctx).Table(d.table()).Find(&rows)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
			return nil, fmt.Errorf("%w: no table %s", ErrAttendanceSourceUnavailable, d.table())
		}

		return nil, fmt.Errorf("%w: %v", ErrAttendanceSourceUnavailable, result.Error)
	}

	return rows, nil
}
