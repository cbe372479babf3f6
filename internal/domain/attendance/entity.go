package attendance

import (
	"math"
	"time"

	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
)

type Attendance struct {
	ID           string
	UserID       string
	Date         time.Time // calendar day
	CheckInTime  time.Time
	CheckOutTime *time.Time
	BreakTime    int // minutes
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join field for responses
	User *user.Summary
}

// WorkingHours derives the worked duration in hours, rounded to two decimal
// places. It is nil until both timestamps are present and never persisted.
func (a *Attendance) WorkingHours() *float64 {
	if a.CheckOutTime == nil {
		return nil
	}
	hours := a.CheckOutTime.Sub(a.CheckInTime).Hours() - float64(a.BreakTime)/60.0
	rounded := math.Round(hours*100) / 100
	return &rounded
}

// CheckOut closes the session. It fails if already closed.
func (a *Attendance) CheckOut(now time.Time) error {
	if a.CheckOutTime != nil {
		return ErrAlreadyCheckedOut
	}
	a.CheckOutTime = &now
	return nil
}
