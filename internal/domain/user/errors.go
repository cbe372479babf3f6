package user

import "errors"

// User domain errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailExists           = errors.New("user with this email already exists")
	ErrPhoneExists           = errors.New("user with this phone number already exists")
	ErrIDCardNumberExists    = errors.New("user with this ID card number already exists")
	ErrInvalidTeamLead       = errors.New("invalid team lead assignment")
	ErrAccessDenied          = errors.New("access denied")
	ErrAdminPrivilegeReq     = errors.New("admin privilege required")
	ErrUserHasRecords        = errors.New("user still has tasks, leaves or attendance records")
	ErrWelcomeDispatchFailed = errors.New("failed to deliver account credentials")
)
