package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/udev-hq/intern-portal-backend/internal/domain/notification"
	"github.com/udev-hq/intern-portal-backend/internal/domain/scope"
	"github.com/udev-hq/intern-portal-backend/internal/domain/task"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/database"
	"github.com/udev-hq/intern-portal-backend/internal/repository/postgresql"
	"github.com/udev-hq/intern-portal-backend/internal/service/file"
)

type taskServiceImpl struct {
	db                  *database.DB
	taskRepo            task.TaskRepository
	userRepo            user.UserRepository
	notificationService notification.NotificationService
	fileService         file.FileService
	inTx                func(ctx context.Context, fn func(txCtx context.Context) error) error
}

func NewTaskService(
	db *database.DB,
	taskRepo task.TaskRepository,
	userRepo user.UserRepository,
	notificationService notification.NotificationService,
	fileService file.FileService,
) task.TaskService {
	s := &taskServiceImpl{
		db:                  db,
		taskRepo:            taskRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		fileService:         fileService,
	}
	s.inTx = func(ctx context.Context, fn func(txCtx context.Context) error) error {
		return postgresql.WithTransaction(ctx, s.db, fn)
	}
	return s
}

func (s *taskServiceImpl) Create(ctx context.Context, actor user.Principal, req task.CreateRequest) (task.Response, error) {
	if !actor.CanReview() {
		return task.Response{}, task.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return task.Response{}, err
	}

	assignee, err := s.userRepo.GetByID(ctx, req.AssigneeID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return task.Response{}, task.ErrAssigneeGone
		}
		return task.Response{}, err
	}

	t := task.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      task.StatusAssigned,
		Priority:    req.Priority,
		AssignerID:  actor.ID,
		AssigneeID:  assignee.ID,
	}
	if req.DueDate != nil {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err == nil {
			t.DueDate = &due
		}
	}

	var created task.Task
	err = s.inTx(ctx, func(txCtx context.Context) error {
		created, err = s.taskRepo.Create(txCtx, t)
		if err != nil {
			return err
		}
		link := fmt.Sprintf("/tasks/%s", created.ID)
		return s.notificationService.Notify(txCtx, notification.Intent{
			SenderID:    &actor.ID,
			RecipientID: assignee.ID,
			Message:     fmt.Sprintf("You have been assigned a new task: %s", created.Title),
			Link:        &link,
		})
	})
	if err != nil {
		return task.Response{}, err
	}

	return task.ToResponse(created), nil
}

func (s *taskServiceImpl) List(ctx context.Context, actor user.Principal, filter task.ListFilter) (task.ListResponse, error) {
	return s.list(ctx, scope.ForTask(actor), filter)
}

func (s *taskServiceImpl) ListMine(ctx context.Context, actor user.Principal, filter task.ListFilter) (task.ListResponse, error) {
	return s.list(ctx, scope.ForOwnTasks(actor), filter)
}

func (s *taskServiceImpl) list(ctx context.Context, sc task.TaskScope, filter task.ListFilter) (task.ListResponse, error) {
	filter.Normalize()

	tasks, total, err := s.taskRepo.List(ctx, sc, filter)
	if err != nil {
		return task.ListResponse{}, err
	}

	responses := make([]task.Response, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, task.ToResponse(t))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return task.ListResponse{
		Tasks:      responses,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *taskServiceImpl) Get(ctx context.Context, actor user.Principal, id string) (task.Response, error) {
	t, err := s.getVisible(ctx, actor, id)
	if err != nil {
		return task.Response{}, err
	}
	return task.ToResponse(t), nil
}

// getVisible loads a task and applies the actor's visibility scope, so a task
// outside the scope yields a forbidden error rather than leaking existence.
func (s *taskServiceImpl) getVisible(ctx context.Context, actor user.Principal, id string) (task.Task, error) {
	t, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return task.Task{}, err
	}
	if !scope.ForTask(actor).Allows(t.AssignerID, t.AssigneeID, t.AssigneeTeamLeadID) {
		return task.Task{}, task.ErrForbidden
	}
	return t, nil
}

func (s *taskServiceImpl) Submit(ctx context.Context, actor user.Principal, id string, req task.SubmitRequest) (task.Response, error) {
	t, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return task.Response{}, err
	}

	// Check the transition before touching storage so a conflict does not
	// strand an uploaded file.
	if err := t.CanSubmit(actor.ID); err != nil {
		return task.Response{}, err
	}

	var fileRef *string
	if req.File != nil {
		path, err := s.fileService.UploadTaskSubmission(ctx, t.ID, req.File)
		if err != nil {
			return task.Response{}, err
		}
		fileRef = &path
	}

	if err := t.Submit(actor.ID, req.Notes, fileRef, time.Now()); err != nil {
		return task.Response{}, err
	}

	var updated task.Task
	err = s.inTx(ctx, func(txCtx context.Context) error {
		updated, err = s.taskRepo.Update(txCtx, t, task.StatusAssigned, task.StatusRejected)
		if err != nil {
			if errors.Is(err, task.ErrTaskNotFound) {
				// The row moved out of a submittable state under us.
				return task.ErrNotSubmittable
			}
			return err
		}
		link := fmt.Sprintf("/tasks/%s", t.ID)
		return s.notificationService.Notify(txCtx, notification.Intent{
			SenderID:    &actor.ID,
			RecipientID: t.AssignerID,
			Message:     fmt.Sprintf("Task submitted for review: %s", t.Title),
			Link:        &link,
		})
	})
	if err != nil {
		return task.Response{}, err
	}

	return task.ToResponse(updated), nil
}

func (s *taskServiceImpl) Accept(ctx context.Context, actor user.Principal, id string, req task.ReviewRequest) (task.Response, error) {
	return s.review(ctx, actor, id, req, true)
}

func (s *taskServiceImpl) Reject(ctx context.Context, actor user.Principal, id string, req task.ReviewRequest) (task.Response, error) {
	return s.review(ctx, actor, id, req, false)
}

func (s *taskServiceImpl) review(ctx context.Context, actor user.Principal, id string, req task.ReviewRequest, accept bool) (task.Response, error) {
	if !actor.CanReview() {
		return task.Response{}, task.ErrForbidden
	}

	t, err := s.getVisible(ctx, actor, id)
	if err != nil {
		return task.Response{}, err
	}

	var verdict string
	if accept {
		err = t.Accept(req.Feedback)
		verdict = "accepted"
	} else {
		err = t.Reject(req.Feedback)
		verdict = "rejected"
	}
	if err != nil {
		return task.Response{}, err
	}

	var updated task.Task
	err = s.inTx(ctx, func(txCtx context.Context) error {
		updated, err = s.taskRepo.Update(txCtx, t, task.StatusSubmitted)
		if err != nil {
			if errors.Is(err, task.ErrTaskNotFound) {
				// A concurrent verdict already moved the row.
				return task.ErrNotSubmitted
			}
			return err
		}
		link := fmt.Sprintf("/tasks/%s", t.ID)
		return s.notificationService.Notify(txCtx, notification.Intent{
			SenderID:    &actor.ID,
			RecipientID: t.AssigneeID,
			Message:     fmt.Sprintf("Your task %q was %s", t.Title, verdict),
			Link:        &link,
		})
	})
	if err != nil {
		return task.Response{}, err
	}

	return task.ToResponse(updated), nil
}

func (s *taskServiceImpl) OverrideStatus(ctx context.Context, actor user.Principal, id string, req task.OverrideStatusRequest) (task.Response, error) {
	if !actor.CanReview() {
		return task.Response{}, task.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return task.Response{}, err
	}

	t, err := s.getVisible(ctx, actor, id)
	if err != nil {
		return task.Response{}, err
	}
	if err := t.OverrideStatus(req.Status); err != nil {
		return task.Response{}, err
	}

	updated, err := s.taskRepo.Update(ctx, t)
	if err != nil {
		return task.Response{}, err
	}
	return task.ToResponse(updated), nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, actor user.Principal, id string) error {
	if !actor.IsAdmin() {
		return task.ErrForbidden
	}
	return s.taskRepo.Delete(ctx, id)
}
