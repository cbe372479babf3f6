package leave

import "errors"

// Leave domain errors
var (
	ErrLeaveNotFound    = errors.New("leave request not found")
	ErrOverlapping      = errors.New("you already have a leave request for this period")
	ErrAlreadyProcessed = errors.New("leave request has already been processed")
	ErrNotPending       = errors.New("cannot delete processed leave requests")
	ErrNotOwner         = errors.New("you can only delete your own leave requests")
	ErrForbidden        = errors.New("you are not allowed to access this leave request")
)
