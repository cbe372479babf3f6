package task

import "errors"

// Task domain errors
var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrForbidden      = errors.New("you are not allowed to access this task")
	ErrNotAssignee    = errors.New("you can only submit your own tasks")
	ErrNotSubmittable = errors.New("task has already been submitted")
	ErrNotSubmitted   = errors.New("task must be submitted before it can be reviewed")
	ErrInvalidStatus  = errors.New("invalid task status")
	ErrAssigneeGone   = errors.New("assignee does not reference an existing user")
)
