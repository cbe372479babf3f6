package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/udev-hq/intern-portal-backend/internal/domain/leave"
	"github.com/udev-hq/intern-portal-backend/internal/domain/notification"
	"github.com/udev-hq/intern-portal-backend/internal/domain/scope"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/database"
	"github.com/udev-hq/intern-portal-backend/internal/repository/postgresql"
)

type leaveServiceImpl struct {
	db                  *database.DB
	leaveRepo           leave.LeaveRepository
	userRepo            user.UserRepository
	notificationService notification.NotificationService
	inTx                func(ctx context.Context, fn func(txCtx context.Context) error) error
}

func NewLeaveService(
	db *database.DB,
	leaveRepo leave.LeaveRepository,
	userRepo user.UserRepository,
	notificationService notification.NotificationService,
) leave.LeaveService {
	s := &leaveServiceImpl{
		db:                  db,
		leaveRepo:           leaveRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
	s.inTx = func(ctx context.Context, fn func(txCtx context.Context) error) error {
		return postgresql.WithTransaction(ctx, s.db, fn)
	}
	return s
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *leaveServiceImpl) Create(ctx context.Context, actor user.Principal, req leave.CreateRequest) (leave.Response, error) {
	start, end, err := req.Validate(today())
	if err != nil {
		return leave.Response{}, err
	}

	l := leave.Leave{
		UserID:    actor.ID,
		LeaveType: req.LeaveType,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		Status:    leave.StatusPending,
	}

	var created leave.Leave
	err = s.inTx(ctx, func(txCtx context.Context) error {
		// Overlap check and insert share the transaction so two concurrent
		// requests for the same period cannot both pass the check.
		overlaps, err := s.leaveRepo.HasOverlapping(txCtx, actor.ID,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
		if err != nil {
			return err
		}
		if overlaps {
			return leave.ErrOverlapping
		}

		created, err = s.leaveRepo.Create(txCtx, l)
		if err != nil {
			return err
		}

		// Tell every reviewer a new request is waiting.
		admins, err := s.userRepo.ListByRole(txCtx, user.RoleAdmin)
		if err != nil {
			return err
		}
		link := fmt.Sprintf("/leaves/%s", created.ID)
		intents := make([]notification.Intent, 0, len(admins))
		for _, admin := range admins {
			if admin.ID == actor.ID {
				continue
			}
			intents = append(intents, notification.Intent{
				SenderID:    &actor.ID,
				RecipientID: admin.ID,
				Message:     fmt.Sprintf("New %s leave request awaiting review", created.LeaveType),
				Link:        &link,
			})
		}
		return s.notificationService.NotifyMany(txCtx, intents)
	})
	if err != nil {
		return leave.Response{}, err
	}

	return leave.ToResponse(created), nil
}

func (s *leaveServiceImpl) ListByUser(ctx context.Context, actor user.Principal, userID string) ([]leave.Response, error) {
	if !scope.ForLeave(actor).Allows(userID) {
		return nil, leave.ErrForbidden
	}

	leaves, err := s.leaveRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toResponses(leaves), nil
}

func (s *leaveServiceImpl) List(ctx context.Context, actor user.Principal, filter leave.ListFilter) ([]leave.Response, error) {
	sc := scope.ForLeave(actor)
	if !sc.All {
		// A member filtering for someone else's records gets nothing.
		if filter.UserID != "" && filter.UserID != actor.ID {
			return []leave.Response{}, nil
		}
		filter.UserID = ""
	}

	leaves, err := s.leaveRepo.List(ctx, sc, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(leaves), nil
}

func (s *leaveServiceImpl) UpdateStatus(ctx context.Context, actor user.Principal, id string, req leave.UpdateStatusRequest) (leave.Response, error) {
	if !actor.CanReview() {
		return leave.Response{}, leave.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	l, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.Response{}, err
	}

	if req.Status == leave.StatusApproved {
		err = l.Approve(actor.ID, time.Now())
	} else {
		err = l.Reject(actor.ID, req.RejectionReason, time.Now())
	}
	if err != nil {
		return leave.Response{}, err
	}

	var updated leave.Leave
	err = s.inTx(ctx, func(txCtx context.Context) error {
		updated, err = s.leaveRepo.Update(txCtx, l)
		if err != nil {
			return err
		}
		link := fmt.Sprintf("/leaves/%s", l.ID)
		return s.notificationService.Notify(txCtx, notification.Intent{
			SenderID:    &actor.ID,
			RecipientID: l.UserID,
			Message:     fmt.Sprintf("Your leave request has been %s", l.Status),
			Link:        &link,
		})
	})
	if err != nil {
		return leave.Response{}, err
	}

	updated.User = l.User
	return leave.ToResponse(updated), nil
}

func (s *leaveServiceImpl) Delete(ctx context.Context, actor user.Principal, id string) error {
	l, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && l.UserID != actor.ID {
		return leave.ErrNotOwner
	}
	if l.Status != leave.StatusPending {
		return leave.ErrNotPending
	}
	return s.leaveRepo.Delete(ctx, id)
}

func toResponses(leaves []leave.Leave) []leave.Response {
	responses := make([]leave.Response, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, leave.ToResponse(l))
	}
	return responses
}
