package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNoRecordToday     = errors.New("no check-in record found for today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")
	ErrForbidden         = errors.New("you are not allowed to access these attendance records")
)
