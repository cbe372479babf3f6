package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/udev-hq/intern-portal-backend/internal/domain/attendance"
	"github.com/udev-hq/intern-portal-backend/internal/domain/scope"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
)

type attendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &attendanceServiceImpl{attendanceRepo: attendanceRepo}
}

func dateOf(t time.Time) string {
	return t.Format("2006-01-02")
}

func (s *attendanceServiceImpl) CheckIn(ctx context.Context, actor user.Principal) (attendance.Response, error) {
	now := time.Now()

	a := attendance.Attendance{
		UserID:      actor.ID,
		Date:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		CheckInTime: now,
	}

	// The per-user-per-day unique constraint is the real guard here; Create
	// maps its violation to ErrAlreadyCheckedIn.
	created, err := s.attendanceRepo.Create(ctx, a)
	if err != nil {
		return attendance.Response{}, err
	}
	return attendance.ToResponse(created), nil
}

func (s *attendanceServiceImpl) CheckOut(ctx context.Context, actor user.Principal) (attendance.Response, error) {
	now := time.Now()

	a, err := s.attendanceRepo.GetByUserAndDate(ctx, actor.ID, dateOf(now))
	if err != nil {
		return attendance.Response{}, err
	}

	if err := a.CheckOut(now); err != nil {
		return attendance.Response{}, err
	}

	updated, err := s.attendanceRepo.Update(ctx, a)
	if err != nil {
		return attendance.Response{}, err
	}
	updated.User = a.User
	return attendance.ToResponse(updated), nil
}

func (s *attendanceServiceImpl) UpdateBreak(ctx context.Context, actor user.Principal, req attendance.UpdateBreakRequest) (attendance.Response, error) {
	if err := req.Validate(); err != nil {
		return attendance.Response{}, err
	}

	a, err := s.attendanceRepo.GetByUserAndDate(ctx, actor.ID, dateOf(time.Now()))
	if err != nil {
		return attendance.Response{}, err
	}

	// Each update replaces the recorded break outright.
	a.BreakTime = req.BreakTime

	updated, err := s.attendanceRepo.Update(ctx, a)
	if err != nil {
		return attendance.Response{}, err
	}
	updated.User = a.User
	return attendance.ToResponse(updated), nil
}

func (s *attendanceServiceImpl) ListByUser(ctx context.Context, actor user.Principal, userID string, filter attendance.ListFilter) ([]attendance.Response, error) {
	if !scope.ForAttendance(actor).Allows(userID) {
		return nil, attendance.ErrForbidden
	}

	records, err := s.attendanceRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

func (s *attendanceServiceImpl) ListByDate(ctx context.Context, actor user.Principal, date string) ([]attendance.Response, error) {
	sc := scope.ForAttendance(actor)
	if !sc.All {
		record, err := s.attendanceRepo.GetByUserAndDate(ctx, actor.ID, date)
		if err != nil {
			if errors.Is(err, attendance.ErrNoRecordToday) {
				return []attendance.Response{}, nil
			}
			return nil, err
		}
		return []attendance.Response{attendance.ToResponse(record)}, nil
	}

	records, err := s.attendanceRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

func (s *attendanceServiceImpl) List(ctx context.Context, actor user.Principal, filter attendance.ListFilter) ([]attendance.Response, error) {
	sc := scope.ForAttendance(actor)
	if !sc.All {
		if filter.UserID != "" && filter.UserID != actor.ID {
			return []attendance.Response{}, nil
		}
		filter.UserID = ""
	}

	records, err := s.attendanceRepo.List(ctx, sc, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

func toResponses(records []attendance.Attendance) []attendance.Response {
	responses := make([]attendance.Response, 0, len(records))
	for _, a := range records {
		responses = append(responses, attendance.ToResponse(a))
	}
	return responses
}
