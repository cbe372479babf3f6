package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/udev-hq/intern-portal-backend/internal/domain/attendance"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceSelectWithUser = `
	SELECT a.id, a.user_id, a.date, a.check_in_time, a.check_out_time, a.break_time,
		   a.created_at, a.updated_at,
		   u.first_name, u.last_name, u.email
	FROM attendance a
	JOIN users u ON a.user_id = u.id
`

func scanAttendanceWithUser(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	var uFirst, uLast, uEmail string
	err := row.Scan(
		&a.ID, &a.UserID, &a.Date, &a.CheckInTime, &a.CheckOutTime, &a.BreakTime,
		&a.CreatedAt, &a.UpdatedAt,
		&uFirst, &uLast, &uEmail,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	a.User = &user.Summary{ID: a.UserID, FirstName: uFirst, LastName: uLast, Email: uEmail}
	return a, nil
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (id, user_id, date, check_in_time, break_time, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		a.UserID, a.Date, a.CheckInTime, a.BreakTime,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendanceWithUser(q.QueryRow(ctx,
		attendanceSelectWithUser+` WHERE a.user_id = $1 AND a.date = $2::date`, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNoRecordToday
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

func (r *attendanceRepositoryImpl) ListByUser(ctx context.Context, userID string, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	sc := attendance.AttendanceScope{OwnerID: userID}
	filter.UserID = ""
	return r.List(ctx, sc, filter)
}

func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, attendanceSelectWithUser+` WHERE a.date = $1::date ORDER BY a.check_in_time ASC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, sc attendance.AttendanceScope, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	var conds []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !sc.All {
		conds = append(conds, "a.user_id = "+arg(sc.OwnerID))
	}
	if filter.UserID != "" {
		conds = append(conds, "a.user_id = "+arg(filter.UserID))
	}
	if filter.StartDate != nil {
		conds = append(conds, "a.date >= "+arg(*filter.StartDate))
	}
	if filter.EndDate != nil {
		conds = append(conds, "a.date <= "+arg(*filter.EndDate))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := q.Query(ctx, attendanceSelectWithUser+" "+where+" ORDER BY a.date DESC, a.check_in_time DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance
		SET check_out_time = $1, break_time = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query, a.CheckOutTime, a.BreakTime, a.ID).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNoRecordToday
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

func collectAttendance(rows pgx.Rows) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendanceWithUser(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
