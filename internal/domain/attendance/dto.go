package attendance

import (
	"time"

	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/validator"
)

type UpdateBreakRequest struct {
	BreakTime int `json:"break_time"` // minutes
}

func (r *UpdateBreakRequest) Validate() error {
	if r.BreakTime < 0 {
		return validator.ValidationErrors{{Field: "break_time", Message: "break_time must not be negative"}}
	}
	return nil
}

// ListFilter narrows attendance listings; all fields are optional.
type ListFilter struct {
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
}

type Response struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	Date         string        `json:"date"`
	CheckInTime  time.Time     `json:"check_in_time"`
	CheckOutTime *time.Time    `json:"check_out_time,omitempty"`
	BreakTime    int           `json:"break_time"`
	WorkingHours *float64      `json:"working_hours,omitempty"`
	User         *user.Summary `json:"user,omitempty"`
}

func ToResponse(a Attendance) Response {
	return Response{
		ID:           a.ID,
		UserID:       a.UserID,
		Date:         a.Date.Format("2006-01-02"),
		CheckInTime:  a.CheckInTime,
		CheckOutTime: a.CheckOutTime,
		BreakTime:    a.BreakTime,
		WorkingHours: a.WorkingHours(),
		User:         a.User,
	}
}
